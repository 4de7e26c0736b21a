package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/samuli/bike-logs/internal/config"
	"github.com/samuli/bike-logs/internal/session"
	"github.com/samuli/bike-logs/internal/weekly"
)

// Styles decide how the console highlights titles and weekday names.
type Styles struct {
	Title    lipgloss.Style
	Weekend  lipgloss.Style
	WeekdayA lipgloss.Style
	WeekdayB lipgloss.Style
	plain    bool
}

// NewStyles builds colored styles for the terminal behind w.
func NewStyles(w io.Writer, colors config.Colors) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:    r.NewStyle().Bold(true),
		Weekend:  r.NewStyle().Foreground(lipgloss.Color(colors.Weekend)),
		WeekdayA: r.NewStyle().Foreground(lipgloss.Color(colors.WeekdayA)),
		WeekdayB: r.NewStyle().Foreground(lipgloss.Color(colors.WeekdayB)),
	}
}

// PlainStyles print text as is.
func PlainStyles() Styles {
	return Styles{plain: true}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

func (s Styles) day(class weekly.ColorClass) lipgloss.Style {
	switch class {
	case weekly.Weekend:
		return s.Weekend
	case weekly.WeekdayA:
		return s.WeekdayA
	default:
		return s.WeekdayB
	}
}

// Console prints the report as text: a block per week, then the total.
// In summary mode only the total line is printed.
type Console struct {
	w       io.Writer
	styles  Styles
	summary bool
}

func NewConsole(w io.Writer, styles Styles, summary bool) *Console {
	return &Console{w: w, styles: styles, summary: summary}
}

func (c *Console) Skipped(err *session.DecodeError) {
	fmt.Fprintf(c.w, "Error parsing %s\n", err)
}

func (c *Console) Week(w weekly.WeekSummary) {
	if c.summary {
		return
	}
	fmt.Fprintln(c.w)
	fmt.Fprintf(c.w, "%s %s\n", c.styles.render(c.styles.Title, w.Title()), w.Details())
	for _, d := range w.Days {
		fmt.Fprintf(c.w, "%s %s\n", c.styles.render(c.styles.day(d.Class), d.Name()), d.Details())
	}
}

func (c *Console) Total(p Period) error {
	if !c.summary {
		fmt.Fprintln(c.w)
	}
	if p.NoData() {
		_, err := fmt.Fprintln(c.w, "No data")
		return err
	}
	_, err := fmt.Fprintln(c.w, TotalLine(p))
	return err
}

// TotalLine formats the period total, e.g.
// "Total (01.01.2021 > 31.01.2021): 45.0 km, 3:00 3 rides".
func TotalLine(p Period) string {
	label := "Total"
	if p.Label != "" {
		label = fmt.Sprintf("Total (%s)", p.Label)
	}
	return fmt.Sprintf("%s: %.1f km, %s %d rides",
		label,
		p.Totals.Kilometers(),
		p.Totals.Time(),
		p.Totals.Rides,
	)
}
