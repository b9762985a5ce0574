package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/tracker"
)

type dashboardModel struct {
	tracker *tracker.Tracker
	now     func() time.Time
	width   int
	height  int

	report usageReport
}

func newDashboardModel(tr *tracker.Tracker) dashboardModel {
	d := dashboardModel{
		tracker: tr,
		now:     time.Now,
		report:  newUsageReport(),
	}
	d.refresh()
	return d
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.report.setSize(w, h)
}

// refresh rebuilds the chart from the tracker.
func (d *dashboardModel) refresh() {
	d.report.setData(d.tracker.Units(), d.tracker.Thresholds())
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if _, ok := msg.(changedMsg); ok {
		d.refresh()
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderStatsPanel(contentWidth),
		panelStyle.Width(contentWidth).Render(d.report.view()),
		d.renderTodayPanel(contentWidth),
	)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	p := d.tracker.Profile()
	greeting := titleStyle.Render("Welcome")
	if p.Name != "" {
		greeting = titleStyle.Render("Hello, " + p.Name)
	}
	if aff := p.Affiliation(); aff != "" {
		greeting += mutedStyle.Render("  " + aff)
	}

	stats := d.tracker.Stats()
	critical := statValueStyle.Render(fmt.Sprintf("%d", stats.Critical))
	if stats.Critical > 0 {
		critical = errorStyle.Bold(true).Render(fmt.Sprintf("%d", stats.Critical))
	}
	boxes := []string{
		statBox("Lessons", statValueStyle.Render(fmt.Sprintf("%d", len(d.tracker.Lessons())))),
		statBox("Total absence", statValueStyle.Render(fmt.Sprintf("%dh", stats.TotalAbsence))),
		statBox("Critical", critical),
		statBox("Average usage", statValueStyle.Render(fmt.Sprintf("%.0f%%", stats.AverageUsage()))),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		greeting,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
	))
}

func statBox(label, value string) string {
	return lipgloss.NewStyle().Width(18).Render(
		lipgloss.JoinVertical(lipgloss.Left, value, mutedStyle.Render(label)),
	)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	now := d.now()
	day, plan := d.tracker.TodayPlan(now)
	week := model.WeekOf(now)

	title := titleStyle.Render("Today") + mutedStyle.Render("  "+day.Label()+" "+now.Format("02.01.2006"))

	var rows []string
	rows = append(rows, title, "")
	if plan == "" {
		rows = append(rows, mutedStyle.Render("  Nothing planned. Press 4 then p to plan the week."))
	} else {
		for _, line := range strings.Split(plan, "\n") {
			rows = append(rows, "  "+highlightStyle.Render(line))
		}
	}

	tasks := d.tracker.TasksFor(week)[day]
	if len(tasks) > 0 {
		done, total := d.tracker.TaskProgress(week, day)
		rows = append(rows, "", fmt.Sprintf("  Tasks %s", mutedStyle.Render(fmt.Sprintf("%d/%d done", done, total))))
		for _, t := range tasks {
			rows = append(rows, "  "+renderTask(t, false))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderTask(t model.Task, selected bool) string {
	box := "[ ]"
	text := normalItemStyle.Render(t.Text)
	if t.Completed {
		box = doneStyle.Render("[✓]")
		text = mutedStyle.Strikethrough(true).Render(t.Text)
	}
	if selected {
		return selectedItemStyle.Render("> ") + box + " " + text
	}
	return "  " + box + " " + text
}
