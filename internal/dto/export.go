package dto

// ExportFormat selects the serialization of a report download.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

// Valid reports whether the format is supported.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return true
	}
	return false
}

// ExportResult is a rendered report ready to stream to the client.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}
