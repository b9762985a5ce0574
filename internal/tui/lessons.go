package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/tracker"
)

// lessonRow is one selectable line: a simple lesson, a composite header or
// one of its parts.
type lessonRow struct {
	lessonID string
	subID    string
	header   bool // composite parent, not adjustable
}

type lessonsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName  *string
	formHours *string
	formRate  *string
	formParts *string
}

func newLessonsModel(tr *tracker.Tracker) lessonsModel {
	name, hours, rate, parts := "", "", "", ""
	return lessonsModel{
		tracker:   tr,
		formName:  &name,
		formHours: &hours,
		formRate:  &rate,
		formParts: &parts,
	}
}

func (l *lessonsModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l lessonsModel) rows() []lessonRow {
	var rows []lessonRow
	for _, lesson := range l.tracker.Lessons() {
		switch v := lesson.(type) {
		case model.SimpleLesson:
			rows = append(rows, lessonRow{lessonID: v.ID})
		case model.CompositeLesson:
			rows = append(rows, lessonRow{lessonID: v.ID, header: true})
			for _, s := range v.SubLessons {
				rows = append(rows, lessonRow{lessonID: v.ID, subID: s.ID})
			}
		}
	}
	return rows
}

func (l lessonsModel) update(msg tea.Msg) (lessonsModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	rows := l.rows()
	l.cursor = min(l.cursor, max(0, len(rows)-1))

	switch {
	case key.Matches(keyMsg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if l.cursor < len(rows)-1 {
			l.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return l.showNewLessonForm()
	case key.Matches(keyMsg, keys.Inc):
		return l, l.adjust(rows, +1)
	case key.Matches(keyMsg, keys.Dec):
		return l, l.adjust(rows, -1)
	case key.Matches(keyMsg, keys.Delete):
		if len(rows) == 0 {
			return l, nil
		}
		entry, err := l.tracker.DeleteLesson(rows[l.cursor].lessonID)
		if err != nil {
			return l, reportErr(err)
		}
		l.cursor = min(l.cursor, max(0, len(l.rows())-1))
		return l, changed(fmt.Sprintf("Moved %q to trash", entry.Title()))
	}
	return l, nil
}

func (l lessonsModel) adjust(rows []lessonRow, delta int) tea.Cmd {
	if len(rows) == 0 {
		return nil
	}
	row := rows[l.cursor]
	if row.header {
		return status("Select a part to change its absence")
	}
	var err error
	if row.subID == "" {
		_, err = l.tracker.AdjustAbsence(row.lessonID, delta)
	} else {
		_, err = l.tracker.AdjustSubAbsence(row.lessonID, row.subID, delta)
	}
	if err != nil {
		return reportErr(err)
	}
	return func() tea.Msg { return changedMsg{} }
}

func (l lessonsModel) showNewLessonForm() (lessonsModel, tea.Cmd) {
	*l.formName = ""
	*l.formHours = ""
	*l.formRate = "30"
	*l.formParts = ""

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Lesson name").Value(l.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Total hours").
				Description("Ignored when the lesson has parts").
				Value(l.formHours).
				Validate(optionalInt(0, maxLessonHours)),
			huh.NewInput().Title("Absence limit (%)").
				Value(l.formRate).
				Validate(validInt(0, 100)),
			huh.NewText().Title("Parts (optional)").
				Description("One per line: name, hours[, limit %]").
				Lines(4).
				Value(l.formParts).
				Validate(func(s string) error {
					_, err := parseParts(s)
					return err
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l lessonsModel) updateForm(msg tea.Msg) (lessonsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		in, err := lessonInput(*l.formName, *l.formHours, *l.formRate, *l.formParts)
		if err != nil {
			return l, reportErr(err)
		}
		lesson, err := l.tracker.AddLesson(in)
		if err != nil {
			return l, reportErr(err)
		}
		return l, changed(fmt.Sprintf("Added %q", lesson.Header().Name))
	}

	return l, cmd
}

const maxLessonHours = 10000

// lessonInput converts the new lesson form. Empty hours mean 0.
func lessonInput(name, hours, rate, parts string) (tracker.LessonInput, error) {
	in := tracker.LessonInput{Name: name}
	var err error
	if strings.TrimSpace(hours) != "" {
		if err = validInt(0, maxLessonHours)(hours); err != nil {
			return in, fmt.Errorf("total hours: %w", err)
		}
		in.TotalHours = atoi(hours)
	}
	if err = validInt(0, 100)(rate); err != nil {
		return in, fmt.Errorf("absence limit: %w", err)
	}
	in.AbsenceRate = atoi(rate)
	if in.SubLessons, err = parseParts(parts); err != nil {
		return in, err
	}
	return in, nil
}

// parseParts reads "name, hours[, rate]" lines.
func parseParts(s string) ([]tracker.SubLessonInput, error) {
	var parts []tracker.SubLessonInput
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("line %d: want name, hours[, limit]", i+1)
		}
		hours, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || hours < 0 {
			return nil, fmt.Errorf("line %d: hours must be a whole number", i+1)
		}
		p := tracker.SubLessonInput{Name: strings.TrimSpace(fields[0]), TotalHours: hours}
		if len(fields) == 3 {
			rate, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(fields[2]), "%"))
			if err != nil || rate < 0 || rate > 100 {
				return nil, fmt.Errorf("line %d: limit must be 0-100", i+1)
			}
			p.AbsenceRate = tracker.Rate(rate)
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func (l lessonsModel) view() string {
	w := l.width - 4
	if l.formActive && l.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Lesson"), "", l.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Lessons")
	lessons := l.tracker.Lessons()
	if len(lessons) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No lessons yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	th := l.tracker.Thresholds()
	barWidth := max(10, min(30, w-60))
	cursor := min(l.cursor, max(0, len(l.rows())-1))

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-30s %-14s %s", "Name", "Used", "")))

	i := 0
	line := func(label string, c absence.Counter, indent bool) {
		prefix := "  "
		style := normalItemStyle
		if i == cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		if indent {
			label = "  └ " + label
		}
		render := statusStyle(th.Classify(c)).Render
		flag := ""
		if th.IsCritical(c) {
			flag = errorStyle.Render(" !")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-30s", prefix, truncate(label, 30)))+" "+
			render(fmt.Sprintf("%-14s", formatUsage(c)))+" "+usageBar(c, barWidth)+flag)
		i++
	}

	for _, lesson := range lessons {
		switch v := lesson.(type) {
		case model.SimpleLesson:
			line(v.Name, v.Counter(), false)
		case model.CompositeLesson:
			prefix, style := "  ", titleStyle
			if i == cursor {
				prefix, style = "> ", selectedItemStyle
			}
			rows = append(rows, style.Render(prefix+v.Name)+mutedStyle.Render(fmt.Sprintf("  %d parts", len(v.SubLessons))))
			i++
			for _, s := range v.SubLessons {
				line(s.Name, s.Counter(), true)
			}
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  +/-: absence  d: delete  ! critical"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
