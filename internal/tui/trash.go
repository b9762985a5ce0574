package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/tracker"
)

type trashModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form
	confirm    *bool
}

func newTrashModel(tr *tracker.Tracker) trashModel {
	return trashModel{tracker: tr, confirm: new(bool)}
}

func (t *trashModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t trashModel) update(msg tea.Msg) (trashModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	entries := t.tracker.Trash()
	t.cursor = min(t.cursor, max(0, len(entries)-1))

	switch {
	case key.Matches(keyMsg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if t.cursor < len(entries)-1 {
			t.cursor++
		}
	case key.Matches(keyMsg, keys.Restore), key.Matches(keyMsg, keys.Enter):
		if len(entries) == 0 {
			return t, nil
		}
		entry, err := t.tracker.Restore(entries[t.cursor].ID)
		if err != nil {
			return t, reportErr(err)
		}
		t.cursor = min(t.cursor, max(0, len(entries)-2))
		return t, changed(fmt.Sprintf("Restored %q", entry.Title()))
	case key.Matches(keyMsg, keys.Delete):
		if len(entries) == 0 {
			return t, nil
		}
		if err := t.tracker.Purge(entries[t.cursor].ID); err != nil {
			return t, reportErr(err)
		}
		t.cursor = min(t.cursor, max(0, len(entries)-2))
		return t, status("Deleted permanently")
	case key.Matches(keyMsg, keys.PurgeAll):
		if len(entries) == 0 {
			return t, nil
		}
		return t.showConfirm(len(entries))
	}
	return t, nil
}

func (t trashModel) showConfirm(n int) (trashModel, tea.Cmd) {
	*t.confirm = false
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Permanently delete %d item(s)?", n)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(t.confirm),
		),
	).WithShowHelp(true)
	t.formActive = true
	return t, t.form.Init()
}

func (t trashModel) updateForm(msg tea.Msg) (trashModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}
	if t.form.State != huh.StateCompleted {
		return t, cmd
	}

	t.formActive = false
	if !*t.confirm {
		return t, nil
	}
	if err := t.tracker.PurgeAll(); err != nil {
		return t, reportErr(err)
	}
	t.cursor = 0
	return t, status("Trash emptied")
}

func (t trashModel) view() string {
	w := t.width - 4
	if t.formActive && t.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Empty Trash"), "", t.form.View()),
		)
	}

	title := titleStyle.Render("Trash")
	entries := t.tracker.Trash()
	if len(entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Trash is empty."),
		)
		return panelStyle.Width(w).Render(content)
	}

	cursor := min(t.cursor, len(entries)-1)
	var rows []string
	rows = append(rows, title+mutedStyle.Render(fmt.Sprintf("  %d item(s)", len(entries))), "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-8s %-32s %s", "Type", "Title", "Deleted")))
	for i, e := range entries {
		prefix := "  "
		style := normalItemStyle
		if i == cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		kind := "Lesson"
		if e.Type == model.TrashNote {
			kind = "Note"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-8s %-32s", prefix, kind, truncate(e.Title(), 32)))+
			" "+mutedStyle.Render(e.DeletedAt.Local().Format("02.01.2006 15:04")))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  r: restore  d: delete permanently  D: empty trash"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
