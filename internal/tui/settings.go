package tui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/store"
	"github.com/sadopc/studytrack/internal/tracker"
)

type settingsModel struct {
	store   *store.Store
	tracker *tracker.Tracker
	width   int
	height  int

	settings   []store.Setting
	saved      []savedAt
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	warning      *string
	danger       *string
	critical     *string
	subRate      *string
	scheduleDays *string
}

func newSettingsModel(s *store.Store, tr *tracker.Tracker) settingsModel {
	w, d, c, r, sd := "", "", "", "", ""
	m := settingsModel{
		store:        s,
		tracker:      tr,
		warning:      &w,
		danger:       &d,
		critical:     &c,
		subRate:      &r,
		scheduleDays: &sd,
	}
	m.settings, _ = s.GetAllSettings()
	m.saved = lastSaved(s)
	return m
}

// savedAt is one "last saved" line of the settings view.
type savedAt struct {
	label string
	at    time.Time
}

var savedKeys = []struct{ key, label string }{
	{store.KeyLessons, "Lessons"},
	{store.KeyNotes, "Notes"},
	{store.KeyTasks, "Tasks"},
	{store.KeyProfile, "Profile"},
}

// lastSaved lists when each collection was written. Collections that were
// never saved are left out.
func lastSaved(s *store.Store) []savedAt {
	var out []savedAt
	for _, k := range savedKeys {
		at, err := s.UpdatedAt(k.key)
		if err != nil {
			continue
		}
		out = append(out, savedAt{label: k.label, at: at})
	}
	return out
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
	saved    []savedAt
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings, saved: lastSaved(s.store)}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.saved = msg.saved
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	th := s.store.Thresholds()
	*s.warning = formatPercent(th.Warning)
	*s.danger = formatPercent(th.Danger)
	*s.critical = formatPercent(th.Critical)
	*s.subRate = strconv.Itoa(s.store.GetInt(store.SettingDefaultSubRate, 30))
	*s.scheduleDays = strconv.Itoa(s.store.GetInt(store.SettingScheduleDays, 5))

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Warning at (% of allowance)").Value(s.warning).Validate(validRatio),
			huh.NewInput().Title("Danger at (% of allowance)").Value(s.danger).Validate(validRatio),
			huh.NewInput().Title("Critical on dashboard at (%)").
				Description("Counted in the dashboard's critical total").
				Value(s.critical).Validate(validRatio),
		).Title("Absence limits"),
		huh.NewGroup(
			huh.NewInput().Title("Default part limit (%)").Value(s.subRate).Validate(validInt(1, 100)),
			huh.NewSelect[string]().Title("Planner days").
				Options(
					huh.NewOption("Monday to Friday", "5"),
					huh.NewOption("Whole week", "7"),
				).Value(s.scheduleDays),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, tea.Batch(
				func() tea.Msg { return statusMsg{text: err.Error(), isError: true} },
				s.refresh(),
			)
		}
		return s, tea.Batch(changed("Settings saved"), s.refresh())
	}

	return s, cmd
}

// saveSettings persists the form and applies it to the tracker.
func (s settingsModel) saveSettings() error {
	th, err := parseThresholds(*s.warning, *s.danger, *s.critical)
	if err != nil {
		return err
	}
	if err := s.store.SetThresholds(th); err != nil {
		return fmt.Errorf("save thresholds: %w", err)
	}
	s.tracker.SetThresholds(th)

	rate := atoi(*s.subRate)
	if err := s.store.SetSetting(store.SettingDefaultSubRate, strconv.Itoa(rate)); err != nil {
		return fmt.Errorf("save default rate: %w", err)
	}
	s.tracker.DefaultSubRate = rate

	if err := s.store.SetSetting(store.SettingScheduleDays, *s.scheduleDays); err != nil {
		return fmt.Errorf("save planner days: %w", err)
	}
	return nil
}

func parseThresholds(warning, danger, critical string) (absence.Thresholds, error) {
	var th absence.Thresholds
	var err error
	if th.Warning, err = parsePercent(warning); err != nil {
		return th, err
	}
	if th.Danger, err = parsePercent(danger); err != nil {
		return th, err
	}
	if th.Critical, err = parsePercent(critical); err != nil {
		return th, err
	}
	if th.Warning > th.Danger {
		return th, errors.New("warning limit must not exceed danger limit")
	}
	return th, nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(settingLabel(setting.Key))
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	if len(s.saved) > 0 {
		rows = append(rows, "", subtitleStyle.Render("Last saved"))
		for _, sv := range s.saved {
			label := lipgloss.NewStyle().Width(24).Render(sv.label)
			rows = append(rows, fmt.Sprintf("  %s %s", label, mutedStyle.Render(sv.at.Local().Format("2006-01-02 15:04"))))
		}
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

var settingLabels = map[string]string{
	store.SettingWarning:        "Warning at",
	store.SettingDanger:         "Danger at",
	store.SettingCritical:       "Critical at",
	store.SettingDefaultSubRate: "Default part limit",
	store.SettingScheduleDays:   "Planner days",
}

func settingLabel(k string) string {
	if l, ok := settingLabels[k]; ok {
		return l
	}
	return k
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingWarning, store.SettingDanger, store.SettingCritical:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return formatPercent(f) + "%"
		}
	case store.SettingDefaultSubRate:
		return v + "%"
	case store.SettingScheduleDays:
		if v == "7" {
			return "whole week"
		}
		return "Monday to Friday"
	}
	return v
}
