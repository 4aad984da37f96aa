package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammadpnp/roster-import/internal/application/directory"
	"github.com/mohammadpnp/roster-import/internal/application/ingestion"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"go.uber.org/zap"
)

type errorBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

// ErrorMapper turns use-case errors into the API envelope. Unauthorized is
// never shown inline: it always carries the sign-in redirect.
type ErrorMapper struct {
	signInURL string
	logger    *zap.Logger
}

func NewErrorMapper(signInURL string, logger *zap.Logger) *ErrorMapper {
	if signInURL == "" {
		signInURL = "/sign-in"
	}
	return &ErrorMapper{signInURL: signInURL, logger: logger}
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrUnsupportedFileType, http.StatusUnsupportedMediaType, "unsupported_file_type", "Unsupported file type. Please upload a CSV or XLSX file."},
	{domain.ErrDecode, http.StatusBadRequest, "decode_error", "The file could not be read."},
	{domain.ErrInvalidSchema, http.StatusBadRequest, "invalid_schema", "Invalid file format. The header row must be: s_no, employee_name, employee_email."},
	{domain.ErrInvalidEmployee, http.StatusBadRequest, "invalid_employee", ""},
	{domain.ErrUploadNotFound, http.StatusNotFound, "upload_not_found", "upload not found or expired"},
	{ingestion.ErrEmptyBatch, http.StatusConflict, "empty_batch", "There are no valid employees to submit."},
	{directory.ErrViewNotFound, http.StatusNotFound, "view_not_found", "directory view not found"},
	{directory.ErrViewClosed, http.StatusGone, "view_closed", "directory view closed"},
	{directory.ErrInvalidPage, http.StatusBadRequest, "invalid_page", "page must be 1 or greater"},
	{directory.ErrInvalidFilter, http.StatusBadRequest, "invalid_filter", "unknown status or last_active filter"},
	{directory.ErrNotOnPage, http.StatusNotFound, "not_on_page", "employee is not on the current page"},
	{directory.ErrNotInvitable, http.StatusUnprocessableEntity, "not_invitable", "only pending employees can be selected"},
	{directory.ErrNothingSelected, http.StatusConflict, "nothing_selected", "select at least one employee"},
	{directory.ErrDeleteNotArmed, http.StatusConflict, "delete_not_armed", "no delete awaiting confirmation"},
}

func (m *ErrorMapper) Fail(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return c.JSON(http.StatusUnauthorized, apiResponse{Error: &errorBody{
			Code:     "redirect_sign_in",
			Message:  "session expired, please sign in again",
			Redirect: m.signInURL,
		}})
	}

	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.target) {
			message := mapping.message
			if message == "" {
				message = err.Error()
			}
			return c.JSON(mapping.status, apiResponse{Error: &errorBody{Code: mapping.code, Message: message}})
		}
	}

	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) {
		m.logger.Warn("employees api rejected request",
			zap.Int("status", remoteErr.StatusCode),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.JSON(http.StatusBadGateway, apiResponse{Error: &errorBody{
			Code:    "remote_error",
			Message: remoteErr.Message,
		}})
	}

	m.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
		Code:    "internal_error",
		Message: "something went wrong, please try again",
	}})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
		Code:    "bad_request",
		Message: message,
	}})
}
