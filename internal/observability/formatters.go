// Package observability provides formatted output utilities for the CLI's pretty mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/visiocraft/visiocraft-ai/internal/extraction"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow caps the skill list in a box
	maxItemsToShow = 25
	// previewLen caps the echoed project description
	previewLen = 120
)

// Printer handles formatted output for pretty mode
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
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtraction outputs the project preview, the model used and the
// extracted skills. Unlike the JSON output it names the failure reason.
func (p *Printer) PrintExtraction(details, model string, result extraction.Result) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Model:    %s\n", model))
	sb.WriteString(fmt.Sprintf("Project:  %s\n", truncate(strings.Join(strings.Fields(details), " "), previewLen)))
	sb.WriteString("\n")

	switch {
	case !result.OK():
		sb.WriteString(fmt.Sprintf("No skills (%s)\n", describeFailure(result.Err)))
	case len(result.Skills) == 0:
		sb.WriteString("No skills found\n")
	default:
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(result.Skills)))
		count := min(len(result.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Skills[i]))
		}
		if len(result.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Skills)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

func describeFailure(err error) string {
	var (
		inputErr  *extraction.InputError
		apiErr    *extraction.APICallError
		parseErr  *extraction.ParseError
		schemaErr *extraction.SchemaError
	)
	switch {
	case errors.Is(err, extraction.ErrModelUnavailable):
		return "model unavailable"
	case errors.As(err, &inputErr):
		return "invalid input"
	case errors.As(err, &apiErr):
		return "model call failed"
	case errors.As(err, &parseErr):
		return "reply was not JSON"
	case errors.As(err, &schemaErr):
		return "reply did not match the skill list schema"
	default:
		return "failed"
	}
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
