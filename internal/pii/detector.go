package pii

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Deterministic pattern detections are never probabilistic.
const regexConfidence = 100.0

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Optional country code, optional area code, then two local blocks.
	phonePattern = regexp.MustCompile(`\b(?:\+?\d{1,3}[\s-]?)?(?:\(?\d{2,4}\)?[\s-]?)?\d{3,4}[\s-]?\d{3,4}\b`)

	// Scheme or www URLs with an optional path, or bare domains that carry
	// a path. Bare domains without a path are left alone so email hosts
	// are not claimed; the leading-@ check below excludes the rest.
	urlPattern = regexp.MustCompile(`(?i)\b(?:(?:https?://|www\.)[a-z0-9-]+(?:\.[a-z0-9-]+)+(?:/[^\s<>"']*)?|[a-z0-9-]+(?:\.[a-z0-9-]+)+/[^\s<>"']+)`)
)

// subLabelTypes maps statistical detector sub-labels to normalized entity
// types. Unlisted labels are ignored.
var subLabelTypes = map[string]string{
	"PERSON":    types.PIITypeName,
	"FIRSTNAME": types.PIITypeName,
	"LASTNAME":  types.PIITypeName,
	"NAME":      types.PIITypeName,
	"ADDRESS":   types.PIITypeLocation,
	"LOCATION":  types.PIITypeLocation,
	"LOC":       types.PIITypeLocation,
	"GPE":       types.PIITypeLocation,
	"CITY":      types.PIITypeLocation,
	"COUNTRY":   types.PIITypeLocation,
}

// Detector combines deterministic regex detection with a statistical span
// detector. The regex pass always wins span conflicts.
type Detector struct {
	classifier TokenClassifier
}

// NewDetector creates a Detector with the given statistical classifier.
func NewDetector(classifier TokenClassifier) *Detector {
	return &Detector{classifier: classifier}
}

// span is a half-open [start,end) character range.
type span struct {
	start, end int
}

func (s span) overlaps(other span) bool {
	return s.start < other.end && other.start < s.end
}

// Detect finds PII entities in text. Regex detections come first in
// detection order (email, phone, URL), followed by merged statistical
// spans. The regex pass and the classifier call run concurrently; the
// merge is strictly ordered after both.
func (d *Detector) Detect(ctx context.Context, text string) ([]types.PIIEntity, error) {
	var tokenSpans []TokenSpan

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		spans, err := d.classifier.Classify(gCtx, text)
		if err != nil {
			return fmt.Errorf("statistical detection failed: %w", err)
		}
		tokenSpans = spans
		return nil
	})

	entities := detectWithRegex(text)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	occupied := make([]span, 0, len(entities))
	for _, ent := range entities {
		occupied = append(occupied, span{ent.StartChar, ent.EndChar})
	}

	entities = append(entities, mergeTokenSpans(tokenSpans, occupied)...)
	return entities, nil
}

// detectWithRegex runs the three deterministic pattern detectors in a
// fixed order. Contact-card extraction depends on this order.
func detectWithRegex(text string) []types.PIIEntity {
	var entities []types.PIIEntity

	detectors := []struct {
		entityType string
		pattern    *regexp.Regexp
	}{
		{types.PIITypeEmail, emailPattern},
		{types.PIITypePhone, phonePattern},
		{types.PIITypeURL, urlPattern},
	}

	for _, det := range detectors {
		for _, loc := range det.pattern.FindAllStringIndex(text, -1) {
			// A URL directly after '@' is an email host, not a URL.
			if det.entityType == types.PIITypeURL && loc[0] > 0 && text[loc[0]-1] == '@' {
				continue
			}
			entities = append(entities, types.PIIEntity{
				EntityType:  det.entityType,
				Text:        text[loc[0]:loc[1]],
				StartChar:   loc[0],
				EndChar:     loc[1],
				Confidence:  regexConfidence,
				Replacement: replacementFor(det.entityType),
			})
		}
	}

	return entities
}

// mergeTokenSpans filters statistical spans against occupied spans and
// merges adjacent same-type spans into whole entities. Every accepted
// statistical span becomes occupied itself, so a later span nested inside
// or overlapping an earlier one is dropped rather than emitted twice
// (classifiers routinely return both a containing and a contained string,
// e.g. a full location and a surname inside it). The result never
// contains overlapping entities.
//
// Two spans merge when they share a normalized type and the second starts
// within one character of the first's end. Identical sub-labels join with
// no separator (continuation of a fragmented word); different sub-labels
// join with a single space (a new word, e.g. first name then last name).
// Confidence of a merged entity is the max of its parts: one strong
// detection anchors the whole span.
func mergeTokenSpans(tokenSpans []TokenSpan, occupied []span) []types.PIIEntity {
	var merged []types.PIIEntity

	taken := make([]span, len(occupied))
	copy(taken, occupied)

	type buffer struct {
		entityType string
		subLabel   string
		text       string
		start, end int
		confidence float64
	}
	var current *buffer

	flush := func() {
		if current == nil {
			return
		}
		merged = append(merged, types.PIIEntity{
			EntityType:  current.entityType,
			Text:        current.text,
			StartChar:   current.start,
			EndChar:     current.end,
			Confidence:  current.confidence,
			Replacement: replacementFor(current.entityType),
		})
		current = nil
	}

	for _, ts := range tokenSpans {
		normalized, ok := subLabelTypes[ts.Label]
		if !ok {
			continue
		}

		// Deterministic detections and already-accepted statistical spans
		// take precedence.
		conflict := false
		for _, occ := range taken {
			if occ.overlaps(span{ts.Start, ts.End}) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		taken = append(taken, span{ts.Start, ts.End})

		if current == nil || current.entityType != normalized || ts.Start > current.end+1 {
			flush()
			current = &buffer{
				entityType: normalized,
				subLabel:   ts.Label,
				text:       ts.Text,
				start:      ts.Start,
				end:        ts.End,
				confidence: ts.Confidence,
			}
			continue
		}

		if ts.Label == current.subLabel {
			current.text += ts.Text
		} else {
			current.text += " " + ts.Text
		}
		current.subLabel = ts.Label
		current.end = ts.End
		if ts.Confidence > current.confidence {
			current.confidence = ts.Confidence
		}
	}
	flush()

	return merged
}

// Redact applies entity replacements to text. Entities are spliced in
// descending start order; splicing lower positions first would invalidate
// the offsets of every entity after them.
func Redact(text string, entities []types.PIIEntity) string {
	ordered := make([]types.PIIEntity, len(entities))
	copy(ordered, entities)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartChar > ordered[j].StartChar
	})

	redacted := text
	for _, ent := range ordered {
		if ent.StartChar < 0 || ent.EndChar > len(redacted) || ent.StartChar >= ent.EndChar {
			continue
		}
		redacted = redacted[:ent.StartChar] + ent.Replacement + redacted[ent.EndChar:]
	}
	return redacted
}

// ProcessResume detects and redacts PII from resume text, returning the
// redacted resume plus the candidate contact card. The contact card takes
// the first detected NAME, EMAIL, PHONE and LOCATION (by detection order,
// not text position) and every URL.
func (d *Detector) ProcessResume(ctx context.Context, text, candidateID string) (*types.RedactedResume, *types.CandidateDetail, error) {
	entities, err := d.Detect(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	resume := &types.RedactedResume{
		ID:           candidateID,
		OriginalText: text,
		RedactedText: Redact(text, entities),
		PIIEntities:  entities,
		ProcessedAt:  time.Now(),
	}

	detail := ExtractContactCard(entities, candidateID)
	return resume, detail, nil
}

// ExtractContactCard builds the candidate contact card from detected
// entities.
func ExtractContactCard(entities []types.PIIEntity, candidateID string) *types.CandidateDetail {
	detail := &types.CandidateDetail{ID: candidateID}

	for _, ent := range entities {
		switch ent.EntityType {
		case types.PIITypeName:
			if detail.Name == "" {
				detail.Name = ent.Text
			}
		case types.PIITypeEmail:
			if detail.Email == "" {
				detail.Email = ent.Text
			}
		case types.PIITypePhone:
			if detail.Phone == "" {
				detail.Phone = ent.Text
			}
		case types.PIITypeLocation:
			if detail.Location == "" {
				detail.Location = ent.Text
			}
		case types.PIITypeURL:
			detail.URLs = append(detail.URLs, ent.Text)
		}
	}

	return detail
}

// DegradedRedaction is the single fallback constructor used when
// statistical detection is unavailable: the original text is treated as
// already redacted, with zero entities and an empty contact card. The
// empty entity list and contact card signal the degrade to any consumer
// inspecting the report.
func DegradedRedaction(text, candidateID string) (*types.RedactedResume, *types.CandidateDetail) {
	resume := &types.RedactedResume{
		ID:           candidateID,
		OriginalText: text,
		RedactedText: text,
		PIIEntities:  []types.PIIEntity{},
		ProcessedAt:  time.Now(),
	}
	return resume, &types.CandidateDetail{ID: candidateID}
}

// replacementFor returns the type-tagged placeholder for an entity type.
func replacementFor(entityType string) string {
	return "[" + strings.ToUpper(entityType) + "]"
}
