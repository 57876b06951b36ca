package pii

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// fakeClassifier returns canned spans.
type fakeClassifier struct {
	spans []TokenSpan
	err   error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) ([]TokenSpan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.spans, nil
}

func TestDetect_RegexOnly(t *testing.T) {
	text := "Contact: jane@x.com, +1 415 555 0100"
	detector := NewDetector(&fakeClassifier{})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	assert.Equal(t, types.PIITypeEmail, entities[0].EntityType)
	assert.Equal(t, "jane@x.com", entities[0].Text)
	assert.Equal(t, 100.0, entities[0].Confidence)

	assert.Equal(t, types.PIITypePhone, entities[1].EntityType)
	assert.Equal(t, 100.0, entities[1].Confidence)

	redacted := Redact(text, entities)
	assert.Contains(t, redacted, "[EMAIL]")
	assert.Contains(t, redacted, "[PHONE]")
	assert.Contains(t, redacted, "Contact: ")
	assert.NotContains(t, redacted, "jane@x.com")
	assert.NotContains(t, redacted, "415 555 0100")
}

func TestDetect_URLDetection(t *testing.T) {
	text := "Portfolio: https://janedoe.dev/projects and github.com/janedoe"
	detector := NewDetector(&fakeClassifier{})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)

	var urls []string
	for _, ent := range entities {
		if ent.EntityType == types.PIITypeURL {
			urls = append(urls, ent.Text)
		}
	}
	assert.Equal(t, []string{"https://janedoe.dev/projects", "github.com/janedoe"}, urls)
}

func TestDetect_EmailHostNotClaimedAsURL(t *testing.T) {
	text := "Mail me at jane@company.example.com/inbox is not a thing"
	detector := NewDetector(&fakeClassifier{})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)

	for _, ent := range entities {
		if ent.EntityType == types.PIITypeURL {
			assert.NotContains(t, ent.Text, "company.example.com",
				"URL detector must not claim the host of an email address")
		}
	}
}

func TestDetect_StatisticalOverlapDiscarded(t *testing.T) {
	// "089-1234" inside the phone span must stay a PHONE detection; the
	// overlapping statistical span is discarded.
	text := "Call +61 089-1234 anytime"
	detector := NewDetector(&fakeClassifier{spans: []TokenSpan{
		{Label: "PHONE_NUM", Text: "089-1234", Start: 9, End: 17, Confidence: 80},
		{Label: "LOCATION", Text: "089-1234", Start: 9, End: 17, Confidence: 60},
	}})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)

	for _, ent := range entities {
		assert.Equal(t, 100.0, ent.Confidence, "only the deterministic detection should survive")
	}
}

func TestDetect_NestedStatisticalSpansDoNotOverlap(t *testing.T) {
	// Classifiers routinely return both a containing and a contained
	// string for the same text region. Only the first accepted span may
	// survive; emitting both would corrupt the redaction splice.
	text := "New York resident since 2019"
	detector := NewDetector(&fakeClassifier{spans: []TokenSpan{
		{Label: "LOCATION", Text: "New York", Start: 0, End: 8, Confidence: 90},
		{Label: "PERSON", Text: "York", Start: 4, End: 8, Confidence: 75},
	}})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, types.PIITypeLocation, entities[0].EntityType)
	assert.Equal(t, "New York", entities[0].Text)

	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			a := span{entities[i].StartChar, entities[i].EndChar}
			b := span{entities[j].StartChar, entities[j].EndChar}
			assert.False(t, a.overlaps(b), "entities %d and %d overlap", i, j)
		}
	}

	assert.Equal(t, "[LOCATION] resident since 2019", Redact(text, entities))
}

func TestDetect_OverlappingStatisticalSpansFirstWins(t *testing.T) {
	// Partial overlap without nesting: the earlier span is kept whole, the
	// later one is discarded rather than truncated.
	text := "Jane Doe Smith applied"
	detector := NewDetector(&fakeClassifier{spans: []TokenSpan{
		{Label: "PERSON", Text: "Jane Doe", Start: 0, End: 8, Confidence: 90},
		{Label: "PERSON", Text: "Doe Smith", Start: 5, End: 14, Confidence: 80},
	}})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Jane Doe", entities[0].Text)
	assert.Equal(t, "[NAME] Smith applied", Redact(text, entities))
}

func TestDetect_AdjacentNameTokensMerge(t *testing.T) {
	text := "Jane Doe\nSoftware Engineer"
	detector := NewDetector(&fakeClassifier{spans: []TokenSpan{
		{Label: "FIRSTNAME", Text: "Ja", Start: 0, End: 2, Confidence: 70},
		{Label: "FIRSTNAME", Text: "ne", Start: 2, End: 4, Confidence: 95},
		{Label: "LASTNAME", Text: "Doe", Start: 5, End: 8, Confidence: 85},
	}})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, entities, 1)

	assert.Equal(t, types.PIITypeName, entities[0].EntityType)
	// Same sub-label joins without a separator, different sub-label with one.
	assert.Equal(t, "Jane Doe", entities[0].Text)
	assert.Equal(t, 0, entities[0].StartChar)
	assert.Equal(t, 8, entities[0].EndChar)
	// Max, not average: one strong detection anchors the span.
	assert.Equal(t, 95.0, entities[0].Confidence)
}

func TestLocateSpans_EqualStartPrefersLonger(t *testing.T) {
	// "New" and "New York" both resolve to offset 0; the longer span must
	// sort first so the merge keeps the containing span.
	spans := locateSpans("New York resident", []classifiedEntity{
		{Label: "LOCATION", Text: "New", Confidence: 80},
		{Label: "LOCATION", Text: "New York", Confidence: 90},
	})

	require.NotEmpty(t, spans)
	assert.Equal(t, "New York", spans[0].Text)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 8, spans[0].End)
}

func TestDetect_GapPreventsMerge(t *testing.T) {
	text := "Jane   Doe"
	detector := NewDetector(&fakeClassifier{spans: []TokenSpan{
		{Label: "FIRSTNAME", Text: "Jane", Start: 0, End: 4, Confidence: 90},
		{Label: "LASTNAME", Text: "Doe", Start: 7, End: 10, Confidence: 90},
	}})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	assert.Equal(t, "Jane", entities[0].Text)
	assert.Equal(t, "Doe", entities[1].Text)
}

func TestDetect_TypeChangeFlushesBuffer(t *testing.T) {
	text := "Jane Sydney"
	detector := NewDetector(&fakeClassifier{spans: []TokenSpan{
		{Label: "FIRSTNAME", Text: "Jane", Start: 0, End: 4, Confidence: 90},
		{Label: "CITY", Text: "Sydney", Start: 5, End: 11, Confidence: 80},
	}})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	assert.Equal(t, types.PIITypeName, entities[0].EntityType)
	assert.Equal(t, types.PIITypeLocation, entities[1].EntityType)
}

func TestDetect_UnknownLabelsIgnored(t *testing.T) {
	text := "Jane was born in 1990"
	detector := NewDetector(&fakeClassifier{spans: []TokenSpan{
		{Label: "DOB", Text: "1990", Start: 17, End: 21, Confidence: 90},
	}})

	entities, err := detector.Detect(context.Background(), text)
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestDetect_ClassifierFailurePropagates(t *testing.T) {
	detector := NewDetector(&fakeClassifier{err: fmt.Errorf("model unavailable")})

	_, err := detector.Detect(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statistical detection failed")
}

func TestRedact_OrderIndependent(t *testing.T) {
	text := "aaa BBB ccc DDD eee"
	entities := []types.PIIEntity{
		{EntityType: types.PIITypeName, Text: "BBB", StartChar: 4, EndChar: 7, Replacement: "[NAME]"},
		{EntityType: types.PIITypeLocation, Text: "DDD", StartChar: 12, EndChar: 15, Replacement: "[LOCATION]"},
	}
	want := "aaa [NAME] ccc [LOCATION] eee"

	ascending := []types.PIIEntity{entities[0], entities[1]}
	descending := []types.PIIEntity{entities[1], entities[0]}

	assert.Equal(t, want, Redact(text, ascending))
	assert.Equal(t, want, Redact(text, descending))
}

func TestProcessResume_ContactCard(t *testing.T) {
	text := "Reach me: jane@x.com or old.jane@y.org, see janedoe.dev/cv and github.com/janedoe"
	detector := NewDetector(&fakeClassifier{})

	resume, detail, err := detector.ProcessResume(context.Background(), text, "cand_1")
	require.NoError(t, err)

	assert.Equal(t, "cand_1", resume.ID)
	assert.Equal(t, text, resume.OriginalText)
	assert.NotEqual(t, text, resume.RedactedText)

	// First occurrence wins for email; all URLs are collected.
	assert.Equal(t, "jane@x.com", detail.Email)
	assert.Len(t, detail.URLs, 2)
}

func TestDegradedRedaction(t *testing.T) {
	resume, detail := DegradedRedaction("original text", "cand_9")

	assert.Equal(t, "original text", resume.OriginalText)
	assert.Equal(t, "original text", resume.RedactedText)
	assert.NotNil(t, resume.PIIEntities)
	assert.Empty(t, resume.PIIEntities)
	assert.Equal(t, "cand_9", detail.ID)
	assert.Empty(t, detail.Name)
	assert.Empty(t, detail.Email)
}
