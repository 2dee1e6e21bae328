package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"BrandMentionScanner/internal/domain"
)

// Printer renders pipeline previews, summaries, and test output as console
// tables.
type Printer struct {
	out io.Writer
}

// NewPrinter writes to out, defaulting to stdout when nil.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out}
}

// RecordPreview prints the first rows of the working table under a heading.
func (p *Printer) RecordPreview(heading string, records []domain.Record, limit int) {
	fmt.Fprintf(p.out, "\n--- %s (%d rows) ---\n", heading, len(records))

	w := p.tab()
	fmt.Fprintln(w, "Brand\tCategory\tPrompt\tResponse\tMentioned")
	for i, rec := range records {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			rec.Brand, rec.Category, truncate(rec.Prompt, 50), truncate(rec.Response, 50), rec.Mentioned)
	}
	w.Flush()
}

// Resolution prints one per-brand lookup outcome line.
func (p *Printer) Resolution(page domain.BrandPage) {
	title := page.Title
	if title == "" {
		title = "-"
	}
	fmt.Fprintf(p.out, "%-12s -> HasWiki=%d  (%s)\n", page.Brand, page.HasWiki, title)
}

// BrandSummaries prints the per-brand aggregate table, capped at limit rows.
func (p *Printer) BrandSummaries(rows []domain.BrandSummary, limit int) {
	fmt.Fprintf(p.out, "\n--- Brand summary ---\n")

	w := p.tab()
	fmt.Fprintln(w, "Category\tBrand\tPrompts\tNonEmpty\tMentions\tMentionRate")
	for i, row := range rows {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2f\n",
			row.Category, row.Brand, row.Prompts, row.NonEmptyResponses, row.Mentions, row.MentionRate)
	}
	w.Flush()
}

// CategorySummaries prints the per-category aggregate table.
func (p *Printer) CategorySummaries(rows []domain.CategorySummary) {
	fmt.Fprintf(p.out, "\n--- Category summary ---\n")

	w := p.tab()
	fmt.Fprintln(w, "Category\tPrompts\tNonEmpty\tMentions\tMentionRate")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.2f\n",
			row.Category, row.Prompts, row.NonEmptyResponses, row.Mentions, row.MentionRate)
	}
	w.Flush()
}

// Association prints the contingency table, the test statistics, the mention
// rates per group, and the interpretation lines.
func (p *Printer) Association(result domain.AssociationResult) {
	fmt.Fprintf(p.out, "\n--- Contingency table (HasWiki x Mentioned) ---\n")

	w := p.tab()
	fmt.Fprint(w, "HasWiki")
	for _, col := range result.Table.ColLevels {
		fmt.Fprintf(w, "\tMentioned=%d", col)
	}
	fmt.Fprintln(w)
	for i, level := range result.Table.RowLevels {
		fmt.Fprintf(w, "%d", level)
		for _, count := range result.Table.Counts[i] {
			fmt.Fprintf(w, "\t%d", count)
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	fmt.Fprintf(p.out, "\nChi-square: %.4f | p-value: %.4g | dof: %d\n",
		result.ChiSquare, result.PValue, result.Dof)
	fmt.Fprintf(p.out, "Phi coefficient (effect size): %.4f\n", result.Phi)

	if len(result.RatesByHasWiki) > 0 {
		fmt.Fprintf(p.out, "\nMention rate by HasWiki:\n")
		levels := make([]int, 0, len(result.RatesByHasWiki))
		for level := range result.RatesByHasWiki {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			fmt.Fprintf(p.out, "  HasWiki=%d: %.4f\n", level, result.RatesByHasWiki[level])
		}
	}

	fmt.Fprintf(p.out, "\nInterpretation:\n")
	if result.PValue < 0.05 {
		fmt.Fprintln(p.out, "- Statistically significant association between having a Wikipedia page and being mentioned.")
	} else {
		fmt.Fprintln(p.out, "- No statistically significant association detected at the 0.05 level.")
	}
	fmt.Fprintln(p.out, "- Phi rule of thumb: ~0.1 small, ~0.3 medium, ~0.5 large.")
}

func (p *Printer) tab() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
