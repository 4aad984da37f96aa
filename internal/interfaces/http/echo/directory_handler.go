package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammadpnp/roster-import/internal/application/directory"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type DirectoryHandler struct {
	views *directory.Registry
	errs  *ErrorMapper
}

type setPageRequest struct {
	Page int `json:"page"`
}

type setFiltersRequest struct {
	Status     string `json:"status"`
	LastActive string `json:"last_active"`
}

type setSearchRequest struct {
	Search string `json:"search"`
}

type mutationResponse struct {
	Message string               `json:"message"`
	View    directory.ViewOutput `json:"view"`
}

func NewDirectoryHandler(views *directory.Registry, errs *ErrorMapper) *DirectoryHandler {
	return &DirectoryHandler{views: views, errs: errs}
}

func (h *DirectoryHandler) OpenView(c echo.Context) error {
	cred := credentialFrom(c)
	view, err := h.views.Open(c.Request().Context(), directory.NewState(cred.Token, cred.Principal(), cred.Organization))
	if err != nil {
		return h.errs.Fail(c, err)
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: view.Snapshot()})
}

func (h *DirectoryHandler) GetView(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return h.errs.Fail(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: view.Snapshot()})
}

func (h *DirectoryHandler) CloseView(c echo.Context) error {
	cred := credentialFrom(c)
	if err := h.views.Close(c.Param("id"), cred.Principal(), cred.Organization); err != nil {
		return h.errs.Fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DirectoryHandler) SetPage(c echo.Context) error {
	var req setPageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	return h.apply(c, func(view *directory.View) error {
		return view.SetPage(c.Request().Context(), req.Page)
	})
}

func (h *DirectoryHandler) SetFilters(c echo.Context) error {
	var req setFiltersRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	return h.apply(c, func(view *directory.View) error {
		return view.SetFilters(c.Request().Context(),
			domain.StatusFilter(req.Status),
			domain.LastActiveFilter(req.LastActive),
		)
	})
}

// SetSearch only schedules the fetch; the response reflects the page as it
// stood when the keystroke arrived.
func (h *DirectoryHandler) SetSearch(c echo.Context) error {
	var req setSearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	view, err := h.view(c)
	if err != nil {
		return h.errs.Fail(c, err)
	}
	view.SetSearch(req.Search)

	return c.JSON(http.StatusAccepted, apiResponse{Data: view.Snapshot()})
}

func (h *DirectoryHandler) Refresh(c echo.Context) error {
	return h.apply(c, func(view *directory.View) error {
		return view.Refresh(c.Request().Context())
	})
}

func (h *DirectoryHandler) ToggleSelection(c echo.Context) error {
	return h.apply(c, func(view *directory.View) error {
		return view.ToggleSelection(c.Param("employee_id"))
	})
}

func (h *DirectoryHandler) ToggleSelectAll(c echo.Context) error {
	return h.apply(c, func(view *directory.View) error {
		view.ToggleSelectAll()
		return nil
	})
}

func (h *DirectoryHandler) Invite(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return h.errs.Fail(c, err)
	}

	message, err := view.Invite(c.Request().Context())
	if err != nil {
		return h.errs.Fail(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: mutationResponse{Message: message, View: view.Snapshot()}})
}

func (h *DirectoryHandler) ArmDelete(c echo.Context) error {
	return h.apply(c, func(view *directory.View) error {
		return view.ArmDelete(c.Param("employee_id"))
	})
}

func (h *DirectoryHandler) CancelDelete(c echo.Context) error {
	return h.apply(c, func(view *directory.View) error {
		view.CancelDelete()
		return nil
	})
}

func (h *DirectoryHandler) ConfirmDelete(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return h.errs.Fail(c, err)
	}

	message, err := view.ConfirmDelete(c.Request().Context())
	if err != nil {
		return h.errs.Fail(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: mutationResponse{Message: message, View: view.Snapshot()}})
}

// view resolves the caller's view and refreshes its credential from the
// request. Another caller's view id resolves to not found.
func (h *DirectoryHandler) view(c echo.Context) (*directory.View, error) {
	cred := credentialFrom(c)
	view, err := h.views.Get(c.Param("id"), cred.Principal(), cred.Organization)
	if err != nil {
		return nil, err
	}
	view.State().SetToken(cred.Token)
	return view, nil
}

func (h *DirectoryHandler) apply(c echo.Context, action func(view *directory.View) error) error {
	view, err := h.view(c)
	if err != nil {
		return h.errs.Fail(c, err)
	}
	if err := action(view); err != nil {
		return h.errs.Fail(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: view.Snapshot()})
}
