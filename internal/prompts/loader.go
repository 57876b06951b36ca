// Package prompts holds the LLM prompt templates for the analysis pipeline.
// Each JSON file maps prompt keys to template text and is embedded at
// compile time, so the binary carries its prompts with it.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Prompt files bundled with the pipeline, one per concern.
const (
	PIIFile        = "pii.json"
	ExtractionFile = "extraction.json"
	MatchingFile   = "matching.json"
	SummaryFile    = "summary.json"
	EntailmentFile = "entailment.json"
)

//go:embed *.json
var promptFS embed.FS

// library caches parsed prompt files by filename.
type library struct {
	mu    sync.RWMutex
	files map[string]map[string]string
}

var lib = library{files: make(map[string]map[string]string)}

func (l *library) file(filename string) (map[string]string, error) {
	l.mu.RLock()
	entries, ok := l.files[filename]
	l.mu.RUnlock()
	if ok {
		return entries, nil
	}

	data, err := promptFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	l.mu.Lock()
	l.files[filename] = entries
	l.mu.Unlock()
	return entries, nil
}

// Get retrieves a prompt by filename and key. The filename is bare, without
// a path (e.g. prompts.MatchingFile).
func Get(filename, key string) (string, error) {
	entries, err := lib.file(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt, panicking if the file or key is missing.
// Prompt files are embedded, so a miss is a packaging bug.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders in template with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}

// List returns the prompt keys available in a file, sorted.
func List(filename string) ([]string, error) {
	entries, err := lib.file(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops all cached prompt files. Useful for testing.
func ClearCache() {
	lib.mu.Lock()
	lib.files = make(map[string]map[string]string)
	lib.mu.Unlock()
}
