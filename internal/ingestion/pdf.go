package ingestion

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDFText extracts the plain text of every readable page. Pages that
// fail to decode are skipped; a PDF with no readable text at all is an
// error.
func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF %s", path)
	}
	return text, nil
}
