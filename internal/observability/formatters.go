// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/daniel/portfolio-api/internal/assess"
	"github.com/daniel/portfolio-api/internal/jobdesc"
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens a line to at most width runes, ellipsized.
func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than the width get a line of their own and are left for clip
// to shorten.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for _, w := range words {
		wl := len([]rune(w))
		switch {
		case lineLen == 0:
		case lineLen+1+wl > width:
			sb.WriteString("\n")
			lineLen = 0
		default:
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(w)
		lineLen += wl
	}
	return sb.String()
}

// PrintAssessment outputs a human-readable summary of a fit assessment.
func (p *Printer) PrintAssessment(result *assess.Result) {
	if result == nil || result.Assessment == nil {
		return
	}
	a := result.Assessment

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fit score:  %d / 100\n", a.FitScore))
	sb.WriteString(fmt.Sprintf("Verdict:    %s\n", verdictLabel(a.Verdict)))
	sb.WriteString(fmt.Sprintf("Source:     %s\n", sourceLabel(result)))
	sb.WriteString("\n")

	if len(a.Strengths) > 0 {
		sb.WriteString("Strengths:\n")
		count := min(len(a.Strengths), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", a.Strengths[i]))
		}
		if len(a.Strengths) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.Strengths)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(a.Gaps) > 0 {
		sb.WriteString("Gaps:\n")
		count := min(len(a.Gaps), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", a.Gaps[i]))
		}
		if len(a.Gaps) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.Gaps)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if a.Summary != "" {
		sb.WriteString(wrap(a.Summary, boxWidth-4))
	}

	p.printBox("JOB FIT ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func verdictLabel(v assess.Verdict) string {
	switch v {
	case assess.VerdictStrongFit:
		return "Strong fit"
	case assess.VerdictPartialFit:
		return "Partial fit"
	case assess.VerdictWeakFit:
		return "Weak fit"
	default:
		return string(v)
	}
}

func sourceLabel(result *assess.Result) string {
	if result.InputType == jobdesc.InputTypeURL {
		return clip(result.ExtractedURL, 40)
	}
	return "pasted text"
}
