package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/export"
	"github.com/sadopc/studytrack/internal/lib/logger/sl"
	"github.com/sadopc/studytrack/internal/store"
	"github.com/sadopc/studytrack/internal/tracker"
)

// Options carries the config values the views need.
type Options struct {
	ExportDir       string
	PhotoMaxSide    int
	ScheduleMaxSide int
	Log             *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	store   *store.Store
	opts    Options
	log     *slog.Logger
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	lessons   lessonsModel
	notes     notesModel
	planner   plannerModel
	trash     trashModel
	profile   profileModel
	settings  settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(tr *tracker.Tracker, s *store.Store, opts Options) App {
	h := help.New()
	h.ShowAll = false

	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	a := App{
		tracker:    tr,
		store:      s,
		opts:       opts,
		log:        log.With(slog.String("component", "tui")),
		activeView: viewDashboard,
		dashboard:  newDashboardModel(tr),
		lessons:    newLessonsModel(tr),
		notes:      newNotesModel(tr),
		planner:    newPlannerModel(tr, opts.ScheduleMaxSide, s.GetInt(store.SettingScheduleDays, 5)),
		trash:      newTrashModel(tr),
		profile:    newProfileModel(tr, opts.PhotoMaxSide),
		settings:   newSettingsModel(s, tr),
		help:       h,
	}
	if !tr.HasProfile() {
		a.activeView = viewProfile
		a.profile, _ = a.profile.showForm(true)
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.profile.formActive && a.profile.form != nil {
		return a.profile.form.Init()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.lessons.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.planner.setSize(a.width, contentHeight)
		a.trash.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewLessons)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewNotes)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewPlanner)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewTrash)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewProfile)
		case key.Matches(msg, keys.Tab7):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		if msg.isError {
			a.log.Warn("status error", slog.String("text", msg.text))
		}
		return a, nil

	case changedMsg:
		a.dashboard.refresh()
		a.planner.setDays(a.store.GetInt(store.SettingScheduleDays, 5))
		return a, nil

	case imageLoadedMsg:
		var cmd tea.Cmd
		switch msg.target {
		case targetSchedule:
			a.planner, cmd = a.planner.update(msg)
		case targetPhoto:
			a.profile, cmd = a.profile.update(msg)
		}
		return a, cmd

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewDashboard:
		a.dashboard.refresh()
	case viewSettings:
		return a, a.settings.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewLessons:
		a.lessons, cmd = a.lessons.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewPlanner:
		a.planner, cmd = a.planner.update(msg)
	case viewTrash:
		a.trash, cmd = a.trash.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewLessons:
		return a.lessons.formActive
	case viewNotes:
		return a.notes.formActive
	case viewPlanner:
		return a.planner.formActive
	case viewTrash:
		return a.trash.formActive
	case viewProfile:
		return a.profile.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewLessons:
		content = a.lessons.view()
	case viewNotes:
		content = a.notes.view()
	case viewPlanner:
		content = a.planner.view()
	case viewTrash:
		content = a.trash.view()
	case viewProfile:
		content = a.profile.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studytrack")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Critical indicator in footer
	critical := ""
	if n := a.tracker.Stats().Critical; n > 0 {
		critical = errorStyle.Render(fmt.Sprintf(" ● %d critical", n))
	}

	left := footerStyle.Render(helpView)
	right := critical + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV (absence report)", "JSON (full backup)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport copies the data now and writes the file off the UI goroutine.
func (a App) doExport(format int) tea.Cmd {
	dateStr := time.Now().Format("2006-01-02")
	log := a.log

	if format == 0 {
		units, th := a.tracker.Units(), a.tracker.Thresholds()
		path := filepath.Join(a.opts.ExportDir, fmt.Sprintf("studytrack-absences-%s.csv", dateStr))
		return func() tea.Msg {
			if err := export.ToCSV(units, th, path); err != nil {
				log.Error("csv export failed", slog.String("path", path), sl.Err(err))
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			log.Info("exported csv", slog.String("path", path))
			return exportDoneMsg{path: path}
		}
	}

	snap := a.tracker.Snapshot()
	path := filepath.Join(a.opts.ExportDir, fmt.Sprintf("studytrack-backup-%s.json", dateStr))
	return func() tea.Msg {
		if err := export.ToJSON(snap, path); err != nil {
			log.Error("json export failed", slog.String("path", path), sl.Err(err))
			return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
		}
		log.Info("exported json", slog.String("path", path))
		return exportDoneMsg{path: path}
	}
}
