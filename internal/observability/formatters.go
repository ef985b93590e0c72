package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBatchSummary outputs a human-readable summary of the batch
// about to be optimized.
func (p *Printer) PrintBatchSummary(batch *types.Batch) {
	if batch == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Products: %d\n", len(batch.Entries)))

	excluded := 0
	for _, entry := range batch.Entries {
		if entry != nil && len(entry.ExcludeOptimizers) > 0 {
			excluded++
		}
	}
	if excluded > 0 {
		sb.WriteString(fmt.Sprintf("With exclusions: %d\n", excluded))
	}
	sb.WriteString("\n")

	count := min(len(batch.Entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := batch.Entries[i]
		if entry == nil {
			continue
		}
		title := entry.StringField("title")
		if title == "" {
			title = "(no title)"
		}
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", entry.OfferID()))
		sb.WriteString(fmt.Sprintf("  %s\n", title))
	}
	if len(batch.Entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more products\n", len(batch.Entries)-maxItemsToShow))
	}

	p.printBox("INPUT BATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunResults outputs per-optimizer outcomes in execution order.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRunResults(title string, results *optimizer.Results) {
	if results == nil || results.Len() == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title+": NO OPTIMIZERS RAN")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	totalOptimized := 0
	failures := 0

	for _, parameter := range results.Keys() {
		result, _ := results.Get(parameter)
		switch result.Result {
		case types.ResultSuccess:
			sb.WriteString(fmt.Sprintf("✓ %s\n", parameter))
			sb.WriteString(fmt.Sprintf("  products optimized: %d\n", result.NumOfProductsOptimized))
			totalOptimized += result.NumOfProductsOptimized
		default:
			failures++
			sb.WriteString(fmt.Sprintf("⚠ %s\n", parameter))
			msg := result.ErrorMsg
			if len(msg) > 45 {
				msg = msg[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", msg))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total optimized: %d", totalOptimized))
	if failures > 0 {
		sb.WriteString(fmt.Sprintf("  Failures: %d", failures))
	}

	p.printBox(title, sb.String())
}
