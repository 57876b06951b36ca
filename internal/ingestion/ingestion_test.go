package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument_TextFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "resume.txt")
	content := "Jane Doe\r\n\r\n\r\n\r\nBackend   Engineer\n- Go\n- Python"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	text, err := LoadDocument(context.Background(), path)
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	// Inner whitespace collapsed, bullets preserved
	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "- Go")
	assert.NotContains(t, text, "\n\n\n")
}

func TestLoadDocument_NotFound(t *testing.T) {
	_, err := LoadDocument(context.Background(), "/no/such/file.txt")
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "/no/such/file.txt", notFound.Path)
}

func TestLoadDocument_Directory(t *testing.T) {
	_, err := LoadDocument(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoadDocument_HTMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "job.html")
	html := `<!DOCTYPE html>
<html><body>
<nav>Navigation noise</nav>
<main><h1>Senior Go Engineer</h1><ul><li>5+ years Go</li></ul></main>
<footer>Footer noise</footer>
</body></html>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))

	text, err := LoadDocument(context.Background(), path)
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "5+ years Go")
	assert.NotContains(t, text, "Navigation noise")
	assert.NotContains(t, text, "Footer noise")
}

func TestLoadDocument_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<div class="job-description">Staff Engineer, payments team. Go required.</div>
<div class="sidebar">Unrelated links</div>
</body></html>`))
	}))
	defer server.Close()

	text, err := LoadDocument(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Staff Engineer")
	assert.NotContains(t, text, "Unrelated links")
}

func TestLoadDocument_URLServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := LoadDocument(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "unexpected status 500")
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "CRLF normalized",
			input:    "line one\r\nline two",
			expected: "line one\nline two",
		},
		{
			name:     "heading indentation dropped",
			input:    "   ## Experience",
			expected: "## Experience",
		},
		{
			name:     "bullet indentation preserved",
			input:    "  - item",
			expected: "  - item",
		},
		{
			name:     "inner whitespace collapsed",
			input:    "too    many\tspaces",
			expected: "too many spaces",
		},
		{
			name:     "blank runs reduced",
			input:    "a\n\n\n\n\nb",
			expected: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}
