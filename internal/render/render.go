// Package render prints gate results for terminals.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/usecase/compare"
	"github.com/kailas-cloud/slotgate/internal/usecase/gate"
)

// Theme defines the colors used for verdict lines.
type Theme struct {
	AcceptColor lipgloss.Color
	RejectColor lipgloss.Color
	AccentColor lipgloss.Color
	MutedColor  lipgloss.Color
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		AcceptColor: lipgloss.Color("142"), // Green
		RejectColor: lipgloss.Color("203"), // Red
		AccentColor: lipgloss.Color("39"),  // Blue
		MutedColor:  lipgloss.Color("245"), // Grey
	}
}

// Printer renders queries, verdicts and comparison reports.
type Printer struct {
	Theme   Theme
	NoColor bool
}

// NewPrinter creates a Printer with the default theme.
func NewPrinter() *Printer {
	return &Printer{Theme: DefaultTheme()}
}

// Evaluations writes one line per document with its verdict.
func (p *Printer) Evaluations(w io.Writer, q query.Query, evals []gate.Evaluation) error {
	var sb strings.Builder
	sb.WriteString(p.header(q))
	for _, e := range evals {
		sb.WriteString(p.verdictLine(e.Document.ID(), e.Verdict.IsAccepted(), e.Verdict.Reason()))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Report writes the similarity-only view followed by the gated view.
func (p *Printer) Report(w io.Writer, rep compare.Report) error {
	var sb strings.Builder
	sb.WriteString(p.header(rep.Query))

	sb.WriteString(p.section("Similarity only"))
	for _, row := range rep.Rows {
		fmt.Fprintf(&sb, "  Doc ID: %s | Similarity Score: %.2f\n", row.Document.ID(), row.Score)
	}
	if rep.Dropped > 0 {
		sb.WriteString(p.muted(fmt.Sprintf("  (%d below min score)", rep.Dropped)) + "\n")
	}
	if rep.Indistinguishable() {
		sb.WriteString(p.muted("  All candidates score the same; similarity alone cannot pick the answer.") + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(p.section("Similarity + slot gate"))
	for _, row := range rep.Rows {
		sb.WriteString(p.verdictLine(row.Document.ID(), row.Verdict.IsAccepted(), row.Verdict.Reason()))
	}
	fmt.Fprintf(&sb, "  %d of %d accepted\n", len(rep.Accepted()), len(rep.Rows))

	_, err := io.WriteString(w, sb.String())
	return err
}

func (p *Printer) header(q query.Query) string {
	var sb strings.Builder
	if q.Text() != "" {
		sb.WriteString(p.accent("Query: "+q.Text()) + "\n")
	}
	line := "Target slot: " + q.TargetLabel()
	for _, c := range q.Constraints() {
		line += fmt.Sprintf(" | %s=%s", c.Slot(), c.Expected())
	}
	sb.WriteString(p.muted(line) + "\n\n")
	return sb.String()
}

func (p *Printer) section(title string) string {
	return p.accent("--- "+title+" ---") + "\n"
}

func (p *Printer) verdictLine(id string, accepted bool, reason string) string {
	if accepted {
		return p.paint(p.Theme.AcceptColor, "✅ "+id+" ACCEPTED") + " (" + reason + ")\n"
	}
	return p.paint(p.Theme.RejectColor, "❌ "+id+" REJECTED") + " (" + reason + ")\n"
}

// muted renders a single line; callers append the newline so lipgloss does not pad it.
func (p *Printer) muted(s string) string {
	return p.paint(p.Theme.MutedColor, s)
}

func (p *Printer) accent(s string) string {
	if p.NoColor {
		return s
	}
	return lipgloss.NewStyle().Foreground(p.Theme.AccentColor).Bold(true).Render(s)
}

func (p *Printer) paint(c lipgloss.Color, s string) string {
	if p.NoColor {
		return s
	}
	return lipgloss.NewStyle().Foreground(c).Render(s)
}
