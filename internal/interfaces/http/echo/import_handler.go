package echo

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammadpnp/roster-import/internal/application/ingestion"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/spreadsheet"
)

type ImportHandler struct {
	ingest  ingestion.IngestSpreadsheet
	submit  ingestion.SubmitBatch
	clear   ingestion.ClearUpload
	onboard ingestion.OnboardEmployee
	errs    *ErrorMapper
}

type onboardEmployeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type clearUploadResponse struct {
	UploadID string `json:"upload_id"`
	Cleared  bool   `json:"cleared"`
}

func NewImportHandler(
	ingest ingestion.IngestSpreadsheet,
	submit ingestion.SubmitBatch,
	clear ingestion.ClearUpload,
	onboard ingestion.OnboardEmployee,
	errs *ErrorMapper,
) *ImportHandler {
	return &ImportHandler{ingest: ingest, submit: submit, clear: clear, onboard: onboard, errs: errs}
}

func (h *ImportHandler) UploadSpreadsheet(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "multipart field \"file\" is required")
	}

	file, err := header.Open()
	if err != nil {
		return badRequest(c, "uploaded file could not be opened")
	}
	defer file.Close()

	out, err := h.ingest.Execute(c.Request().Context(), ingestion.IngestSpreadsheetInput{
		Upload: domain.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get(echo.HeaderContentType),
			Body:        file,
		},
	})
	if err != nil {
		return h.errs.Fail(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) DownloadSample(c echo.Context) error {
	format, ok := spreadsheet.ParseFormat(c.QueryParam("format"))
	if !ok {
		return badRequest(c, "format must be csv or xlsx")
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteSample(&buf, format); err != nil {
		return h.errs.Fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", spreadsheet.SampleFilename(format)))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *ImportHandler) SubmitUpload(c echo.Context) error {
	out, err := h.submit.Execute(c.Request().Context(), ingestion.SubmitBatchInput{
		UploadID: c.Param("upload_id"),
		Token:    credentialFrom(c).Token,
	})
	if err != nil {
		return h.errs.Fail(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) ClearUpload(c echo.Context) error {
	uploadID := c.Param("upload_id")
	if err := h.clear.Execute(c.Request().Context(), ingestion.ClearUploadInput{UploadID: uploadID}); err != nil {
		return h.errs.Fail(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: clearUploadResponse{UploadID: uploadID, Cleared: true}})
}

func (h *ImportHandler) OnboardEmployee(c echo.Context) error {
	var req onboardEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.onboard.Execute(c.Request().Context(), ingestion.OnboardEmployeeInput{
		Name:  req.Name,
		Email: req.Email,
		Token: credentialFrom(c).Token,
	})
	if err != nil {
		return h.errs.Fail(c, err)
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}
