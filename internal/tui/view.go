package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/radar/internal/viz"
)

func (a *App) View() string {
	w, h := a.canvasSize()
	canvas := viz.NewCanvas(w, h)
	viz.Draw(viz.NewCanvasPainter(canvas), viz.FrameOf(a.chart))
	chart := canvas.Render(a.palette.Style)

	header := viz.HeaderStyle.Render(
		viz.GradientText(a.title, a.palette.Polygon, a.palette.PolygonInteractive) +
			"  " + viz.Subtle.Render(a.palette.Name))

	body := lipgloss.JoinHorizontal(lipgloss.Top, chart, "  ", a.panel())
	return lipgloss.JoinVertical(lipgloss.Left, header, body, a.hints())
}

func (a *App) panel() string {
	var b strings.Builder

	status := viz.StatusIdle.Render("○ idle")
	if a.chart.Animating() {
		status = viz.StatusAnimating.Render(viz.AnimatedSpinner(a.frame) + " turning")
	}
	mode := viz.Subtle.Render("view")
	if a.chart.Interactive() {
		mode = viz.MetricValue.Render("interactive")
	}
	b.WriteString(status + "  " + mode + "\n")
	b.WriteString(viz.Separator(sidePanel-4) + "\n")

	sel := a.palette.Style(viz.InkSelected)
	maxValue := a.chart.MaxValue()
	for i, p := range a.chart.Data() {
		name := fmt.Sprintf("%-11.11s", p.Name)
		line := viz.MetricLabel.Render(name)
		marker := "  "
		if a.chart.Interactive() && i == a.chart.SelectedIndex() {
			line = sel.Render(name)
			marker = sel.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %d\n", marker, line, viz.ValueBar(p.Value, maxValue, 12), p.Value))
	}
	if !a.chart.HasData() {
		b.WriteString(viz.Subtle.Render("no data") + "\n")
	}

	b.WriteString(viz.Separator(sidePanel-4) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", viz.MetricLabel.Render("offset"), viz.MetricValue.Render(fmt.Sprintf("%.3f rad", a.chart.Offset()))))
	if len(a.history) > 1 {
		b.WriteString(asciigraph.Plot(a.history,
			asciigraph.Height(5),
			asciigraph.Width(sidePanel-10),
			asciigraph.Precision(1),
		) + "\n")
	}

	if len(a.events) > 0 {
		b.WriteString(viz.Separator(sidePanel-4) + "\n")
		for _, e := range a.events {
			b.WriteString(viz.Subtle.Render(e) + "\n")
		}
	}
	return viz.GlassPanel.Width(sidePanel - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) hints() string {
	return viz.KeyHint.Render("e interactive  ←→ turn  ↑↓ value  g gravity  t theme  s save  q quit")
}
