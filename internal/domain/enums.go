package domain

// Content types served and accepted by the service.
const (
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeZip  = "application/zip"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// TemplateExtension is the only accepted template file extension.
const TemplateExtension = ".docx"

// AllowedTemplateContentTypes lists sniffed content types a DOCX upload may report.
// DOCX is a zip container, so magic-byte detection yields application/zip.
var AllowedTemplateContentTypes = map[string]bool{
	"application/zip":          true,
	"application/octet-stream": true,
}

// GenerationMode distinguishes single-document responses from zip archives.
type GenerationMode string

const (
	GenerationSingle GenerationMode = "single"
	GenerationBulk   GenerationMode = "bulk"
)

// ExportFormat selects the history export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)
