package dashboard

import (
	"fmt"
	"strings"

	"RegimeBoard/internal/model"
)

// FormatReport renders the view as plain text for terminals.
func FormatReport(v View, title string) string {
	if v.Status == StatusError {
		return v.Error + "\n"
	}
	if v.Status == StatusLoading {
		return "Fetching price data...\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n\n", title))

	rng := "full history"
	if v.Range.Complete() {
		rng = fmt.Sprintf("%s to %s", v.Range.Start, v.Range.End)
	}
	b.WriteString(fmt.Sprintf("Date Range: %s (%d points)\n", rng, v.Points))
	b.WriteString(fmt.Sprintf("Volatility: %s | Avg Log Return: %s\n\n",
		v.StatsDisplay["Volatility"], v.StatsDisplay["Avg Log Return"]))

	b.WriteString("Change points:\n")
	if len(v.ChangePoints) == 0 {
		b.WriteString("  none in range\n")
	}
	for _, cp := range v.ChangePoints {
		b.WriteString(fmt.Sprintf("  %-12s %s  %.2f\n", cp.Label, cp.DisplayDate, cp.Price))
	}

	if len(v.ChangePointEvents) > 0 {
		b.WriteString("\nNearest key events:\n")
		for _, l := range v.ChangePointEvents {
			cp := l.ChangePoint
			if l.Event == nil {
				b.WriteString(fmt.Sprintf("  %-12s %s  no event nearby\n", cp.Label, cp.DisplayDate))
				continue
			}
			b.WriteString(fmt.Sprintf("  %-12s %s  %s (%s, %dd)\n",
				cp.Label, cp.DisplayDate, l.Event.Event, model.DateOnly(l.Event.Date), *l.DaysApart))
		}
	}

	if len(v.ExtremeReturns) > 0 {
		b.WriteString("\nExtreme return days:\n")
		for _, x := range v.ExtremeReturns {
			b.WriteString(fmt.Sprintf("  %s  %.2f  %+.2f%%\n", model.DateOnly(x.Date), x.Price, x.LogReturn*100))
		}
	}

	if len(v.Events) > 0 {
		b.WriteString("\nKey events:\n")
		for _, e := range v.Events {
			b.WriteString(fmt.Sprintf("  %s  %s\n", model.DateOnly(e.Date), e.Event))
		}
	}

	for _, w := range v.Warnings {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", w))
	}
	return b.String()
}
