package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"docgen/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by CSV and XLSX exports.
var columns = []string{
	"History ID",
	"Generated At",
	"Client",
	"Template",
	"Output File",
	"User ID",
	"Storage Key",
}

// Row is one generation history entry with its client and template names resolved.
type Row struct {
	Entry        domain.GenerationHistory
	ClientName   string
	TemplateName string
}

// Writer wraps csv.Writer for exporting generation history as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts a batch of history rows to CSV records and writes them.
func (w *Writer) WriteRows(rows []Row) error {
	for i := range rows {
		if err := w.csv.Write(rowValues(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func rowValues(r *Row) []string {
	userID := ""
	if r.Entry.UserID != nil {
		userID = r.Entry.UserID.String()
	}
	return []string{
		r.Entry.ID.String(),
		r.Entry.GeneratedAt.UTC().Format(time.RFC3339),
		r.ClientName,
		r.TemplateName,
		r.Entry.OutputFilename,
		userID,
		r.Entry.StorageKey,
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name string, format domain.ExportFormat, now time.Time) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "export"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), format)
}
