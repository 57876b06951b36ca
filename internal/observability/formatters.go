// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRedaction outputs the detected PII entities and contact card.
func (p *Printer) PrintRedaction(redacted *types.RedactedResume, details *types.CandidateDetail) {
	if redacted == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Entities detected: %d\n", len(redacted.PIIEntities)))

	count := min(len(redacted.PIIEntities), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := redacted.PIIEntities[i]
		sb.WriteString(fmt.Sprintf("  • %-8s %q (%.0f)\n", e.EntityType, e.Text, e.Confidence))
	}
	if len(redacted.PIIEntities) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(redacted.PIIEntities)-maxItemsToShow))
	}

	if details != nil {
		sb.WriteString("\nContact card:\n")
		sb.WriteString(fmt.Sprintf("  Name:     %s\n", details.Name))
		sb.WriteString(fmt.Sprintf("  Email:    %s\n", details.Email))
		sb.WriteString(fmt.Sprintf("  Phone:    %s\n", details.Phone))
		sb.WriteString(fmt.Sprintf("  Location: %s\n", details.Location))
		if len(details.URLs) > 0 {
			sb.WriteString(fmt.Sprintf("  URLs:     %s\n", strings.Join(details.URLs, ", ")))
		}
	}

	p.printBox("PII REDACTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResume outputs a human-readable summary of the parsed resume.
func (p *Printer) PrintResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", resume.CandidateID))
	if resume.TotalExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Years:     %.1f\n", *resume.TotalExperienceYears))
	}
	sb.WriteString("\n")

	if len(resume.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(resume.Skills)))
		count := min(len(resume.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", resume.Skills[i]))
		}
		if len(resume.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(resume.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(resume.Experience)))
		count := min(len(resume.Experience), 3)
		for i := 0; i < count; i++ {
			exp := resume.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", exp.Title, exp.Company))
		}
		if len(resume.Experience) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experience)-3))
		}
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs a human-readable summary of the parsed job.
func (p *Printer) PrintJob(job *types.ParsedJob) {
	if job == nil {
		return
	}

	var sb strings.Builder
	if len(job.RoleTitle) > 0 {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", job.RoleTitle[0]))
	}
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	if job.RequiredExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Years:    %.0f+\n", *job.RequiredExperienceYears))
	}
	sb.WriteString("\n")

	if len(job.RequiredSkills) > 0 {
		sb.WriteString("Required skills:\n")
		count := min(len(job.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.RequiredSkills[i]))
		}
		if len(job.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.RequiredSkills)-maxItemsToShow))
		}
	}
	if len(job.PreferredSkills) > 0 {
		sb.WriteString("Preferred:\n")
		count := min(len(job.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.PreferredSkills[i]))
		}
	}

	p.printBox("PARSED JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFitAnalysis outputs the scored fit analysis.
func (p *Printer) PrintFitAnalysis(fit *types.FitAnalysis) {
	if fit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall fit:     %.2f\n", fit.OverallFitScore))
	sb.WriteString(fmt.Sprintf("Recommendation:  %s (%.0f)\n", fit.Recommendation, fit.RecommendationConfidence))
	sb.WriteString(fmt.Sprintf("Skills:          %.2f\n", fit.SkillMatchScore))
	sb.WriteString(fmt.Sprintf("Experience:      %.2f\n", fit.ExperienceMatchScore))
	sb.WriteString(fmt.Sprintf("Education:       %.2f\n", fit.EducationMatchScore))
	sb.WriteString(fmt.Sprintf("Seniority:       %s\n", fit.SeniorityMatch.Status))

	if len(fit.SkillMatches) > 0 {
		sb.WriteString("\nSkill matches:\n")
		count := min(len(fit.SkillMatches), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := fit.SkillMatches[i]
			sb.WriteString(fmt.Sprintf("  • %-20s %-12s %.2f\n", m.Skill, m.Result, m.Similarity))
		}
		if len(fit.SkillMatches) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(fit.SkillMatches)-maxItemsToShow))
		}
	}

	if len(fit.KeyStrengths) > 0 {
		sb.WriteString("\nKey strengths:\n")
		for _, s := range fit.KeyStrengths {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("FIT ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the final report header and summary.
func (p *Printer) PrintReport(r *types.AnalysisReport) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s (%s)\n", r.CandidateDetails.Name, r.CandidateDetails.ID))
	sb.WriteString(fmt.Sprintf("Job:       %s\n", r.JobID))
	sb.WriteString(fmt.Sprintf("Fit:       %.2f (%s)\n", r.FitAnalysis.OverallFitScore, r.FitAnalysis.Recommendation))
	if r.RedactionDegraded() {
		sb.WriteString("Note:      contact card unavailable (degraded redaction)\n")
	}
	sb.WriteString("\nSummary:\n")
	sb.WriteString(r.Summary.Summary)

	p.printBox("ANALYSIS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
