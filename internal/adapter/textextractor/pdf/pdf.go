// Package pdf extracts text from PDF uploads in process.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	pdflib "github.com/ledongthuc/pdf"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/pkg/textx"
)

// MIMEType is the only content type the extractor accepts.
const MIMEType = "application/pdf"

// Extractor implements domain.TextExtractor using github.com/ledongthuc/pdf.
type Extractor struct{}

var _ domain.TextExtractor = Extractor{}

// New returns a PDF extractor.
func New() Extractor { return Extractor{} }

// Extract returns the document text, pages in order, rows separated by newlines.
// Anything that is not a parseable PDF yields domain.ErrExtraction.
func (Extractor) Extract(ctx context.Context, fileName string, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("op=pdf.Extract: %w: empty document", domain.ErrExtraction)
	}
	if mt := mimetype.Detect(data); !mt.Is(MIMEType) {
		return "", fmt.Errorf("op=pdf.Extract: %w: unsupported content type %s", domain.ErrExtraction, mt.String())
	}

	defer func() {
		if r := recover(); r != nil {
			slog.WarnContext(ctx, "pdf parser panicked", slog.String("file", fileName), slog.Any("panic", r))
			text, err = "", fmt.Errorf("op=pdf.Extract: %w: malformed document", domain.ErrExtraction)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("op=pdf.Extract: %w: %v", domain.ErrExtraction, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(page))
	}
	return textx.SanitizeText(strings.Join(pages, "\n")), nil
}

// pageText reads a page row by row so line structure survives; it falls back
// to the library's plain text reader when row grouping fails.
func pageText(page pdflib.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			var b strings.Builder
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			lines = append(lines, b.String())
		}
		return strings.Join(lines, "\n")
	}
	plain, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return plain
}
