package spreadsheet

import (
	"mime"
	"path/filepath"
	"strings"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	mimeCSV  = "text/csv"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DetectFormat resolves the upload format from the file extension, falling
// back to the declared MIME type when the name carries no extension.
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(filename))) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case "":
	default:
		return "", domain.ErrUnsupportedFileType
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", domain.ErrUnsupportedFileType
	}
	switch mediaType {
	case mimeCSV, "application/csv":
		return FormatCSV, nil
	case mimeXLSX:
		return FormatXLSX, nil
	default:
		return "", domain.ErrUnsupportedFileType
	}
}

// ContentType is the MIME type served for a format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return mimeXLSX
	}
	return mimeCSV
}

func ParseFormat(raw string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	default:
		return "", false
	}
}
