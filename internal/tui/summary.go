package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// RenderBuildSummary formats r as a bordered panel.
func RenderBuildSummary(r blogsmith.BuildReport) string {
	rows := []struct{ label, value string }{
		{"Output", r.OutputPath},
		{"Posts", fmt.Sprintf("%d (%d tags)", r.Posts, r.Tags)},
		{"Files", fmt.Sprintf("%d pages, %d assets", r.Pages, r.Assets)},
		{"Size", humanBytes(r.Bytes)},
		{"Took", r.Duration.Round(time.Millisecond).String()},
	}

	var b strings.Builder
	b.WriteString(SuccessStyle.Render(SymbolCheck + " Site published"))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render(row.label))
		b.WriteString(row.value)
	}
	return BoxStyle.Render(b.String())
}

// RenderDrift formats d as one line per path, prefixed +, ~ or -.
func RenderDrift(d blogsmith.Drift) string {
	if d.Empty() {
		return SuccessStyle.Render(SymbolCheck + " Output is up to date")
	}

	var b strings.Builder
	b.WriteString(WarningStyle.Render(fmt.Sprintf("%d added, %d changed, %d removed",
		len(d.Added), len(d.Changed), len(d.Removed))))
	for _, group := range []struct {
		symbol string
		paths  []string
	}{
		{SymbolPlus, d.Added},
		{SymbolTilde, d.Changed},
		{SymbolMinus, d.Removed},
	} {
		for _, p := range group.paths {
			b.WriteString("\n  ")
			b.WriteString(group.symbol)
			b.WriteString(" ")
			b.WriteString(p)
		}
	}
	return b.String()
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
