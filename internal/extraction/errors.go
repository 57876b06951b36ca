package extraction

import "fmt"

// ParseError indicates a structured-extraction conversation failed or
// produced output that could not be decoded.
type ParseError struct {
	Document string // "resume" or "job"
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Document, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CardinalityError indicates a parsed job's evidence list length does not
// match its item list, breaking the item/evidence pairing downstream
// consumers rely on.
type CardinalityError struct {
	Field    string
	Items    int
	Evidence int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("evidence cardinality mismatch on %s: %d items, %d evidence entries", e.Field, e.Items, e.Evidence)
}
