package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpaceRe = regexp.MustCompile(`\s+`)
	blankRunsRe  = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes document text while preserving its structure:
// line endings become LF, trailing whitespace is dropped, runs of inner
// whitespace collapse to one space, markdown-style headings and bullets
// keep their markers, and blank-line runs shrink to at most one blank line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := blankRunsRe.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Headings lose their indentation, bullets keep theirs.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "• ") {
		return strings.Repeat(" ", indent) + trimmed
	}

	normalized := innerSpaceRe.ReplaceAllString(trimmed, " ")
	return strings.Repeat(" ", indent) + normalized
}
