// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-checker/internal/db"
	"github.com/jonathan/resume-checker/internal/types"
	"github.com/jonathan/resume-checker/internal/validation"
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

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to maxItemsToShow items, then a count of the rest.
func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		sb.WriteString(fmt.Sprintf("%s: (none)\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("%s:\n", label))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

func percent(score float64) string {
	return fmt.Sprintf("%3.0f%%", score*100)
}

// PrintValidationReport outputs the measurements behind the content check.
func (p *Printer) PrintValidationReport(report *validation.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Length:            %d characters\n", report.Length))
	sb.WriteString(fmt.Sprintf("Resume terms:      %d\n", len(report.ResumeIndicators)))
	sb.WriteString(fmt.Sprintf("Non-resume terms:  %d\n", len(report.NonResumeIndicators)))
	sb.WriteString(fmt.Sprintf("Structure:         %d/5\n", report.StructuralScore))
	if missing := report.Signals.Missing(); len(missing) > 0 {
		sb.WriteString(fmt.Sprintf("Missing:           %s\n", strings.Join(missing, ", ")))
	}

	p.printBox("CONTENT CHECK", sb.String())
}

// PrintResumeRecord outputs a human-readable summary of the extracted resume.
func (p *Printer) PrintResumeRecord(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", record.Name))
	contact := record.ContactInfo
	if contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", contact.Email))
	}
	if contact.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:     %s\n", contact.Phone))
	}
	if contact.LinkedIn != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn:  %s\n", contact.LinkedIn))
	}
	if contact.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", contact.Location))
	}
	sb.WriteString("\n")

	if len(record.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range record.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", edu.Degree, edu.Institution))
			if edu.DateRange != "" {
				sb.WriteString(fmt.Sprintf("    %s (%s)\n", edu.FieldOfStudy, edu.DateRange))
			} else {
				sb.WriteString(fmt.Sprintf("    %s\n", edu.FieldOfStudy))
			}
		}
		sb.WriteString("\n")
	}

	if len(record.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(record.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := record.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s (%s)\n", exp.Title, exp.Company, exp.DateRange))
		}
		if len(record.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Skills (%d): %s", len(record.Skills), strings.Join(record.Skills, ", ")))

	p.printBox("EXTRACTED RESUME", sb.String())
}

// PrintScoreRecord outputs the score breakdown for one job.
func (p *Printer) PrintScoreRecord(record *types.ScoreRecord, job *types.JobRequirements) {
	if record == nil {
		return
	}

	title := "MATCH SCORE"
	if job != nil {
		title = fmt.Sprintf("MATCH SCORE: %s (%s)", job.Title, job.ID)
	} else if record.JobID != "" {
		title = fmt.Sprintf("MATCH SCORE: %s", record.JobID)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:     %s\n", percent(record.OverallScore)))
	sb.WriteString(fmt.Sprintf("Skills:      %s\n", percent(record.SkillMatchScore)))
	sb.WriteString(fmt.Sprintf("Experience:  %s  (%.1f years)\n", percent(record.ExperienceScore), record.TotalYearsExperience))
	sb.WriteString(fmt.Sprintf("Education:   %s  (%s)\n", percent(record.EducationScore), record.CandidateEducationLevel))
	sb.WriteString("\n")

	writeList(&sb, "Matching skills", record.MatchingSkills)
	writeList(&sb, "Missing skills", record.MissingSkills)
	writeList(&sb, "Extra skills", record.ExtraSkills)

	p.printBox(title, sb.String())
}

// PrintJobRanking outputs scores for several jobs, best match first.
func (p *Printer) PrintJobRanking(records []types.ScoreRecord) {
	if len(records) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs scored: %d\n\n", len(records)))
	for i, record := range records {
		sb.WriteString(fmt.Sprintf("#%d  %-12s %s  (skills %s, exp %s, edu %s)\n",
			i+1, record.JobID,
			percent(record.OverallScore),
			percent(record.SkillMatchScore),
			percent(record.ExperienceScore),
			percent(record.EducationScore),
		))
	}

	p.printBox("JOB RANKING", sb.String())
}

// PrintJobs lists job requirements, one block per job.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintJobs(jobs []types.JobRequirements) {
	for _, job := range jobs {
		fmt.Fprintf(p.out, "%s\t%s\n", job.ID, job.Title)
		fmt.Fprintf(p.out, "\tskills:     %s\n", strings.Join(job.RequiredSkills, ", "))
		fmt.Fprintf(p.out, "\texperience: %g+ years\n", job.MinYearsExperience)
		fmt.Fprintf(p.out, "\teducation:  %s\n", job.MinEducationLevel)
	}
}

// PrintRuns lists stored analysis runs, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRuns(runs []db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.out, "No runs found")
		return
	}
	for _, run := range runs {
		score := "   -"
		if run.OverallScore != nil {
			score = percent(*run.OverallScore)
		}
		jobID := run.JobID
		if jobID == "" {
			jobID = "-"
		}
		fmt.Fprintf(p.out, "%s\t%-9s\t%s\t%-8s\t%s\t%s\n",
			run.ID, run.Status, score, jobID, run.CreatedAt.Format(time.RFC3339), run.Filename)
	}
}

// PrintRun outputs one run with its stored artifacts, the steps that could run next and the
// steps still waiting on a dependency.
func (p *Printer) PrintRun(run *db.Run, artifacts []db.ArtifactSummary, pending, blocked []string) {
	if run == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s (%s)\n", run.Filename, run.Format))
	sb.WriteString(fmt.Sprintf("Status: %s\n", run.Status))
	if run.JobID != "" {
		sb.WriteString(fmt.Sprintf("Job: %s\n", run.JobID))
	}
	if run.OverallScore != nil {
		sb.WriteString(fmt.Sprintf("Overall score: %s\n", percent(*run.OverallScore)))
	}
	if run.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Error: %s\n", run.ErrorMessage))
	}
	sb.WriteString(fmt.Sprintf("Started: %s\n", run.CreatedAt.Format(time.RFC3339)))
	if run.CompletedAt != nil {
		sb.WriteString(fmt.Sprintf("Finished: %s\n", run.CompletedAt.Format(time.RFC3339)))
	}
	sb.WriteString("\n")

	steps := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		steps = append(steps, fmt.Sprintf("%s [%s]", a.Step, a.Category))
	}
	writeList(&sb, "Artifacts", steps)
	writeList(&sb, "Pending", pending)
	writeList(&sb, "Blocked", blocked)

	p.printBox("RUN "+run.ID.String(), sb.String())
}

// PrintText writes a heading line followed by text exactly as stored. Empty text prints nothing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintText(title, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(p.out, "── %s ──\n%s\n", title, strings.TrimRight(text, "\n"))
}
