package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/media"
	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/tracker"
)

type plannerForm int

const (
	formSchedule plannerForm = iota
	formPlan
	formTask
	formImage
)

// plannerModel shows the lesson schedule, the weekly plan and the task list
// for one ISO week.
type plannerModel struct {
	tracker  *tracker.Tracker
	now      func() time.Time
	maxSide  int
	width    int
	height   int
	taskDays []model.DayKey

	weekOffset int
	day        int
	taskCursor int

	formActive bool
	form       *huh.Form
	formKind   plannerForm

	// Form field pointers (survive value copies)
	scheduleVals map[model.DayKey]*string
	planVals     map[model.DayKey]*string
	formText     *string
}

func newPlannerModel(tr *tracker.Tracker, scheduleMaxSide, days int) plannerModel {
	p := plannerModel{
		tracker:      tr,
		now:          time.Now,
		maxSide:      scheduleMaxSide,
		scheduleVals: make(map[model.DayKey]*string),
		planVals:     make(map[model.DayKey]*string),
		formText:     new(string),
	}
	p.setDays(days)
	for _, d := range model.AllDays {
		p.scheduleVals[d] = new(string)
		p.planVals[d] = new(string)
	}
	// Start on today when it is shown.
	today := model.DayOf(p.now())
	for i, d := range p.taskDays {
		if d == today {
			p.day = i
		}
	}
	return p
}

// setDays switches the task strip between five and seven days.
func (p *plannerModel) setDays(days int) {
	p.taskDays = model.AllDays
	if days == 5 {
		p.taskDays = model.Weekdays
	}
	p.day = min(p.day, len(p.taskDays)-1)
}

func (p *plannerModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p plannerModel) week() model.WeekKey {
	return model.WeekOf(p.now().AddDate(0, 0, 7*p.weekOffset))
}

func (p plannerModel) selectedDay() model.DayKey {
	return p.taskDays[p.day]
}

func (p plannerModel) update(msg tea.Msg) (plannerModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case imageLoadedMsg:
		if msg.target != targetSchedule {
			return p, nil
		}
		if msg.err != nil {
			return p, reportErr(msg.err)
		}
		if err := p.tracker.SetScheduleImage(msg.dataURL); err != nil {
			return p, reportErr(err)
		}
		return p, status("Schedule image saved (" + media.Describe(msg.dataURL) + ")")

	case tea.KeyMsg:
		return p.updateKeys(msg)
	}
	return p, nil
}

func (p plannerModel) updateKeys(msg tea.KeyMsg) (plannerModel, tea.Cmd) {
	week, day := p.week(), p.selectedDay()
	tasks := p.tracker.TasksFor(week)[day]
	p.taskCursor = min(p.taskCursor, max(0, len(tasks)-1))

	switch {
	case key.Matches(msg, keys.Left):
		if p.day > 0 {
			p.day--
			p.taskCursor = 0
		}
	case key.Matches(msg, keys.Right):
		if p.day < len(p.taskDays)-1 {
			p.day++
			p.taskCursor = 0
		}
	case key.Matches(msg, keys.PrevWeek):
		p.weekOffset--
		p.taskCursor = 0
	case key.Matches(msg, keys.NextWeek):
		p.weekOffset++
		p.taskCursor = 0
	case key.Matches(msg, keys.Up):
		if p.taskCursor > 0 {
			p.taskCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.taskCursor < len(tasks)-1 {
			p.taskCursor++
		}
	case key.Matches(msg, keys.Toggle):
		if len(tasks) == 0 {
			return p, nil
		}
		_, err := p.tracker.ToggleTask(week, day, tasks[p.taskCursor].ID)
		return p, reportErr(err)
	case key.Matches(msg, keys.Delete):
		if len(tasks) == 0 {
			return p, nil
		}
		if err := p.tracker.DeleteTask(week, day, tasks[p.taskCursor].ID); err != nil {
			return p, reportErr(err)
		}
		p.taskCursor = min(p.taskCursor, max(0, len(tasks)-2))
		return p, status("Task deleted")
	case key.Matches(msg, keys.New):
		return p.showTextForm(formTask, "New task for "+day.Label())
	case key.Matches(msg, keys.Image):
		return p.showTextForm(formImage, "Schedule image path")
	case key.Matches(msg, keys.Clear):
		if p.tracker.ScheduleImage() == "" {
			return p, nil
		}
		if err := p.tracker.ClearScheduleImage(); err != nil {
			return p, reportErr(err)
		}
		return p, status("Schedule image removed")
	case key.Matches(msg, keys.Schedule):
		return p.showScheduleForm()
	case key.Matches(msg, keys.Plan):
		return p.showPlanForm()
	case key.Matches(msg, keys.ClearPlan):
		if err := p.tracker.ClearWeeklyPlan(); err != nil {
			return p, reportErr(err)
		}
		return p, status("Weekly plan cleared")
	}
	return p, nil
}

func (p plannerModel) showScheduleForm() (plannerModel, tea.Cmd) {
	current := p.tracker.Schedule()
	var fields []huh.Field
	for _, d := range model.Weekdays {
		*p.scheduleVals[d] = current[d]
		fields = append(fields, huh.NewText().Title(d.Label()).Lines(2).Value(p.scheduleVals[d]))
	}
	p.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	p.formKind = formSchedule
	p.formActive = true
	return p, p.form.Init()
}

func (p plannerModel) showPlanForm() (plannerModel, tea.Cmd) {
	current := p.tracker.WeeklyPlan()
	var fields []huh.Field
	for _, d := range model.AllDays {
		*p.planVals[d] = current[d]
		fields = append(fields, huh.NewInput().Title(d.Label()).Value(p.planVals[d]))
	}
	p.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	p.formKind = formPlan
	p.formActive = true
	return p, p.form.Init()
}

func (p plannerModel) showTextForm(kind plannerForm, title string) (plannerModel, tea.Cmd) {
	*p.formText = ""
	p.form = huh.NewForm(
		huh.NewGroup(huh.NewInput().Title(title).Value(p.formText)),
	).WithShowHelp(true).WithShowErrors(true)
	p.formKind = kind
	p.formActive = true
	return p, p.form.Init()
}

func (p plannerModel) updateForm(msg tea.Msg) (plannerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	p.formActive = false
	switch p.formKind {
	case formSchedule:
		s := model.Schedule{}
		for _, d := range model.Weekdays {
			s[d] = strings.TrimSpace(*p.scheduleVals[d])
		}
		if err := p.tracker.SetSchedule(s); err != nil {
			return p, reportErr(err)
		}
		return p, status("Schedule saved")
	case formPlan:
		plan := model.WeeklyPlan{}
		for _, d := range model.AllDays {
			if v := strings.TrimSpace(*p.planVals[d]); v != "" {
				plan[d] = v
			}
		}
		if err := p.tracker.SetWeeklyPlan(plan); err != nil {
			return p, reportErr(err)
		}
		return p, status("Weekly plan saved")
	case formTask:
		if _, err := p.tracker.AddTask(p.week(), p.selectedDay(), *p.formText); err != nil {
			return p, reportErr(err)
		}
		return p, nil
	case formImage:
		if strings.TrimSpace(*p.formText) == "" {
			return p, nil
		}
		return p, tea.Batch(status("Loading image..."), loadImage(*p.formText, p.maxSide, targetSchedule))
	}
	return p, nil
}

func (p plannerModel) view() string {
	w := p.width - 4
	if p.formActive && p.form != nil {
		title := map[plannerForm]string{
			formSchedule: "Lesson Schedule",
			formPlan:     "Weekly Plan",
			formTask:     "New Task",
			formImage:    "Schedule Image",
		}[p.formKind]
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		p.renderSchedule(w),
		p.renderTasks(w),
	)
}

func (p plannerModel) renderSchedule(w int) string {
	schedule := p.tracker.Schedule()
	plan := p.tracker.WeeklyPlan()
	today := model.DayOf(p.now())

	var rows []string
	rows = append(rows, titleStyle.Render("Schedule & weekly plan"), "")
	if img := p.tracker.ScheduleImage(); img != "" {
		rows = append(rows, secondaryStyle.Render("  Image: "+media.Describe(img)), "")
	}
	colWidth := max(12, (w-22)/2)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %-*s %s", "", colWidth, "Lessons", "Plan")))
	for _, d := range model.AllDays {
		label := fmt.Sprintf("  %-10s", d.Label())
		if d == today {
			label = highlightStyle.Render(label)
		}
		lessons := strings.ReplaceAll(strings.TrimSpace(schedule[d]), "\n", " · ")
		if lessons == "" {
			lessons = "-"
		}
		planText := strings.TrimSpace(plan[d])
		if planText == "" {
			planText = "-"
		}
		rows = append(rows, fmt.Sprintf("%s %-*s %s", label, colWidth, truncate(lessons, colWidth), truncate(planText, colWidth)))
	}
	rows = append(rows, "", mutedStyle.Render("  s: schedule  i: image  x: remove image  p: plan  c: clear plan"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p plannerModel) renderTasks(w int) string {
	week := p.week()
	book := p.tracker.TasksFor(week)

	var tabs []string
	for i, d := range p.taskDays {
		done, total := p.tracker.TaskProgress(week, d)
		label := d.Label()[:3]
		if total > 0 {
			label += fmt.Sprintf(" %d/%d", done, total)
		}
		if i == p.day {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Tasks "), mutedStyle.Render(string(week)+"  "), lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)

	var rows []string
	rows = append(rows, header, "")
	tasks := book[p.selectedDay()]
	if len(tasks) == 0 {
		rows = append(rows, mutedStyle.Render("  No tasks. Press n to add one."))
	}
	cursor := min(p.taskCursor, max(0, len(tasks)-1))
	for i, t := range tasks {
		rows = append(rows, renderTask(t, i == cursor))
	}
	rows = append(rows, "", mutedStyle.Render("  ←/→: day  [/]: week  n: new  space: done  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
