package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/model"
)

// usageReport is the per-unit absence usage chart shown on the dashboard,
// with a short table of the units closest to their limit below it.
type usageReport struct {
	width  int
	height int

	units []model.Unit
	th    absence.Thresholds

	chart barchart.Model
}

func newUsageReport() usageReport {
	return usageReport{chart: barchart.New(60, 10)}
}

func (r *usageReport) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r *usageReport) setData(units []model.Unit, th absence.Thresholds) {
	r.units = units
	r.th = th
	r.buildChart()
}

func (r *usageReport) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if r.height > 36 {
		chartHeight = 12
	}

	r.chart = barchart.New(chartWidth, chartHeight)
	if len(r.units) == 0 {
		return
	}

	labelWidth := max(3, chartWidth/len(r.units)-1)
	bars := make([]barchart.BarData, 0, len(r.units))
	for _, u := range r.units {
		ratio, _ := absence.UsageRatio(u.Counter)
		color := statusColor(r.th.Classify(u.Counter))
		bars = append(bars, barchart.BarData{
			Label: truncate(unitShortLabel(u), labelWidth),
			Values: []barchart.BarValue{{
				Name:  u.Label(),
				Value: ratio * 100,
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func unitShortLabel(u model.Unit) string {
	if u.SubName != "" {
		return u.SubName
	}
	return u.LessonName
}

func (r usageReport) view() string {
	title := titleStyle.Render("Absence usage")
	if len(r.units) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No lessons yet. Press 2 to go to Lessons and add one."),
		)
	}
	legend := fmt.Sprintf("%s  %s  %s",
		statusStyle(absence.Safe).Render("● safe"),
		statusStyle(absence.Warning).Render(fmt.Sprintf("● ≥%s%%", formatPercent(r.th.Warning))),
		statusStyle(absence.Danger).Render(fmt.Sprintf("● ≥%s%%", formatPercent(r.th.Danger))),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", legend),
		"",
		r.chart.View(),
		"",
		r.renderTopTable(3),
	)
}

// renderTopTable lists the n units with the highest usage.
func (r usageReport) renderTopTable(n int) string {
	ranked := append([]model.Unit(nil), r.units...)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, _ := absence.UsageRatio(ranked[i].Counter)
		rj, _ := absence.UsageRatio(ranked[j].Counter)
		return ri > rj
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %12s %10s", "Closest to limit", "Used", "Left")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(0, min(r.width-8, 52)))))
	for _, u := range ranked {
		render := statusStyle(r.th.Classify(u.Counter)).Render
		rows = append(rows, fmt.Sprintf("  %-28s %12s %10s",
			truncate(u.Label(), 28),
			render(formatUsage(u.Counter)),
			fmt.Sprintf("%dh", absence.Remaining(u.Counter)),
		))
	}
	return strings.Join(rows, "\n")
}
