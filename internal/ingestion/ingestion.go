// Package ingestion resolves document sources into clean plain text.
// A source may be a local text, HTML or PDF file, or an http(s) URL.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NotFoundError indicates the source path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Path)
}

// LoadDocument resolves a source into cleaned text. Dispatch is by shape:
// http(s) URLs are fetched and their main content extracted; .pdf files go
// through the PDF text extractor; .html/.htm files through the HTML
// extractor; anything else is read as plain text.
func LoadDocument(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		text, err := loadFromURL(ctx, source)
		if err != nil {
			return "", err
		}
		return CleanText(text), nil
	}

	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: source}
		}
		return "", fmt.Errorf("failed to stat %s: %w", source, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("source %s is a directory", source)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".pdf":
		text, err := extractPDFText(source)
		if err != nil {
			return "", err
		}
		return CleanText(text), nil
	case ".html", ".htm":
		raw, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", source, err)
		}
		text, err := extractMainText(string(raw))
		if err != nil {
			return "", err
		}
		return CleanText(text), nil
	default:
		raw, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", source, err)
		}
		return CleanText(string(raw)), nil
	}
}
