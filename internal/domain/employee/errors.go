package employee

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrDecode              = errors.New("failed to decode spreadsheet")
	ErrInvalidSchema       = errors.New("invalid spreadsheet schema")
	ErrInvalidEmployee     = errors.New("invalid employee")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUploadNotFound      = errors.New("upload not found")
	ErrImportRunNotFound   = errors.New("import run not found")
)

// RemoteError is a non-success response from the external directory API.
// Message carries the server's error payload when it sent one.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote status %d: %s", e.StatusCode, e.Message)
}
