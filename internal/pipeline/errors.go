package pipeline

import "fmt"

// Stage names reported in errors and progress events.
const (
	StageLoadResume  = "load_resume"
	StageLoadJob     = "load_job"
	StageRedact      = "redact"
	StageParseResume = "parse_resume"
	StageParseJob    = "parse_job"
	StageMatch       = "match"
	StageSummarise   = "summarise"
	StageReport      = "report"
)

// LoadError indicates a document source could not be resolved.
type LoadError struct {
	Stage  string
	Source string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: failed to load %s: %v", e.Stage, e.Source, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// RedactionError indicates PII detection failed. The orchestrator recovers
// from this one by falling back to degraded redaction; it surfaces only
// through progress events, never from Analyse.
type RedactionError struct {
	Cause error
}

func (e *RedactionError) Error() string {
	return fmt.Sprintf("%s: %v", StageRedact, e.Cause)
}

func (e *RedactionError) Unwrap() error { return e.Cause }

// ExtractionError indicates structured parsing of the resume or job failed.
type ExtractionError struct {
	Stage string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// MatchingError indicates the fit-analysis conversation failed.
type MatchingError struct {
	Cause error
}

func (e *MatchingError) Error() string {
	return fmt.Sprintf("%s: %v", StageMatch, e.Cause)
}

func (e *MatchingError) Unwrap() error { return e.Cause }

// SummaryError indicates summary generation or regeneration failed.
type SummaryError struct {
	Cause error
}

func (e *SummaryError) Error() string {
	return fmt.Sprintf("%s: %v", StageSummarise, e.Cause)
}

func (e *SummaryError) Unwrap() error { return e.Cause }
