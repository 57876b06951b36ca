// Package tools exposes the deterministic scoring functions as callable
// tools for the fit-analysis and extraction conversations. Every numeric
// score in a fit analysis comes from a tool call, never from model
// arithmetic.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/candidate-matcher/internal/entailment"
	"github.com/jonathan/candidate-matcher/internal/matching"
)

// Registry wires the scoring engine and entailment judge into a tool set.
// It implements llm.ToolSet.
type Registry struct {
	engine *matching.Engine
	entail entailment.Scorer
}

// NewRegistry creates a tool registry over the given collaborators. The
// entailment scorer may be nil when the conversation does not need it.
func NewRegistry(engine *matching.Engine, entail entailment.Scorer) *Registry {
	return &Registry{engine: engine, entail: entail}
}

// Declarations returns every tool the registry can dispatch.
func (r *Registry) Declarations() []*genai.Tool {
	decls := matcherDeclarations()
	decls = append(decls, parserDeclarations()...)
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// View is a Registry restricted to the tools one conversation should see.
// Dispatch still goes through the full registry.
type View struct {
	reg   *Registry
	decls []*genai.FunctionDeclaration
}

// Declarations returns the view's tool declarations.
func (v *View) Declarations() []*genai.Tool {
	return []*genai.Tool{{FunctionDeclarations: v.decls}}
}

// Dispatch delegates to the underlying registry.
func (v *View) Dispatch(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	return v.reg.Dispatch(ctx, name, args)
}

// Matcher returns the fit-scoring tools used by the matcher conversation.
func (r *Registry) Matcher() *View {
	return &View{reg: r, decls: matcherDeclarations()}
}

// Parser returns the date and entailment tools used by the extraction
// conversations.
func (r *Registry) Parser() *View {
	return &View{reg: r, decls: parserDeclarations()}
}

func matcherDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "evaluate_single_skill",
			Description: "Evaluate lexical and semantic match of one job skill against all candidate skills. Returns classification: match | transferable | missing (with similarity).",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"job_skill":        {Type: genai.TypeString, Description: "One skill required or preferred by the job description"},
					"candidate_skills": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "All skills extracted from the candidate resume"},
				},
				Required: []string{"job_skill", "candidate_skills"},
			},
		},
		{
			Name:        "score_experience_years",
			Description: "Deterministic score for candidate experience years against the job requirement. Omit an argument when the value is unknown.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"candidate_years": {Type: genai.TypeNumber, Description: "Candidate total experience years, omit if unknown"},
					"required_years":  {Type: genai.TypeNumber, Description: "Years required by the job, omit if unspecified"},
				},
			},
		},
		{
			Name:        "score_experience_kind",
			Description: "Lexical and semantic match of the kind of experience the job requires against the candidate's experience descriptions.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"required_kind":              {Type: genai.TypeString, Description: "Kind of experience the job asks for, empty if unspecified"},
					"candidate_experience_texts": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Candidate experience descriptions"},
				},
				Required: []string{"candidate_experience_texts"},
			},
		},
		{
			Name:        "combine_experience_scores",
			Description: "Combine the years and kind experience scores into one weighted experience score.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"years_score": {Type: genai.TypeNumber},
					"kind_score":  {Type: genai.TypeNumber},
				},
				Required: []string{"years_score", "kind_score"},
			},
		},
		{
			Name:        "score_education_and_qualification",
			Description: "Evaluate lexical and semantic match of one required education or qualification item against the candidate's items of that category.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ad_required_qualification":  {Type: genai.TypeString, Description: "One education or qualification required by the job, empty if unspecified"},
					"candidate_qualification":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Candidate education or qualification items for this category"},
					"education_or_qualification": {Type: genai.TypeString, Description: "Category indicator: education or qualification"},
				},
				Required: []string{"candidate_qualification", "education_or_qualification"},
			},
		},
		{
			Name:        "compute_overall_fit_score",
			Description: "Weighted overall score combining required and preferred skills, experience, education/qualifications, and seniority. All inputs are 0-100 scores.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"required_skill_score": {Type: genai.TypeNumber},
					"prefered_skill_score": {Type: genai.TypeNumber},
					"experience_score":     {Type: genai.TypeNumber},
					"qualification_score":  {Type: genai.TypeNumber},
					"seniority_score":      {Type: genai.TypeNumber},
				},
				Required: []string{"required_skill_score", "prefered_skill_score", "experience_score", "qualification_score", "seniority_score"},
			},
		},
	}
}

func parserDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "parse_dates_and_duration",
			Description: "Parse dates and compute duration in years. Handles open-ended ranges (present, current, now).",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"start_date": {Type: genai.TypeString},
					"end_date":   {Type: genai.TypeString},
				},
			},
		},
		{
			Name:        "nli_entailment_check",
			Description: "Check whether evidence entails a factual hypothesis. Returns an entailment score between 0 and 100.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"claim":    {Type: genai.TypeString, Description: "Short factual statement, e.g. \"Candidate has skill python\""},
					"evidence": {Type: genai.TypeString, Description: "Exact text snippet"},
				},
				Required: []string{"claim", "evidence"},
			},
		},
	}
}

// Dispatch executes the named tool against decoded arguments.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	switch name {
	case "evaluate_single_skill":
		result, err := r.engine.EvaluateSkill(ctx, argString(args, "job_skill"), argStrings(args, "candidate_skills"))
		if err != nil {
			return nil, err
		}
		return toMap(result)

	case "score_experience_years":
		result := r.engine.ScoreExperienceYears(argNumber(args, "candidate_years"), argNumber(args, "required_years"))
		return toMap(result)

	case "score_experience_kind":
		result, err := r.engine.ScoreExperienceKind(ctx, argString(args, "required_kind"), argStrings(args, "candidate_experience_texts"))
		if err != nil {
			return nil, err
		}
		return toMap(result)

	case "combine_experience_scores":
		years := argNumber(args, "years_score")
		kind := argNumber(args, "kind_score")
		if years == nil || kind == nil {
			return nil, fmt.Errorf("combine_experience_scores requires years_score and kind_score")
		}
		return toMap(r.engine.CombineExperienceScores(*years, *kind))

	case "score_education_and_qualification":
		result, err := r.engine.ScoreEducationOrQualification(ctx,
			argString(args, "ad_required_qualification"),
			argStrings(args, "candidate_qualification"),
			argString(args, "education_or_qualification"))
		if err != nil {
			return nil, err
		}
		return toMap(result)

	case "compute_overall_fit_score":
		scores := make([]float64, 0, 5)
		for _, key := range []string{"required_skill_score", "prefered_skill_score", "experience_score", "qualification_score", "seniority_score"} {
			v := argNumber(args, key)
			if v == nil {
				return nil, fmt.Errorf("compute_overall_fit_score requires %s", key)
			}
			scores = append(scores, *v)
		}
		overall := r.engine.ComputeOverallFitScore(scores[0], scores[1], scores[2], scores[3], scores[4])
		return map[string]interface{}{"overall_fit_score": overall}, nil

	case "parse_dates_and_duration":
		return toMap(matching.ParseDatesAndDuration(argString(args, "start_date"), argString(args, "end_date")))

	case "nli_entailment_check":
		if r.entail == nil {
			return nil, fmt.Errorf("entailment scorer not configured")
		}
		score, err := r.entail.Score(ctx, argString(args, "evidence"), argString(args, "claim"))
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"entailment_score": score * 100}, nil

	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

// argString reads an optional string argument, returning "" when absent.
func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// argStrings reads an optional string-array argument.
func argStrings(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// argNumber reads an optional numeric argument, returning nil when absent so
// callers can distinguish "unknown" from zero.
func argNumber(args map[string]interface{}, key string) *float64 {
	switch v := args[key].(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	}
	return nil
}

// toMap converts a result struct into the generic response payload the
// model receives.
func toMap(result interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode tool result: %w", err)
	}
	return out, nil
}
