package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/tracker"
)

type notesModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form

	formTitle   *string
	formContent *string
	formColor   *string
}

func newNotesModel(tr *tracker.Tracker) notesModel {
	title, content, color := "", "", string(model.NotePink)
	return notesModel{
		tracker:     tr,
		formTitle:   &title,
		formContent: &content,
		formColor:   &color,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return n, nil
	}
	notes := n.tracker.Notes()
	n.cursor = min(n.cursor, max(0, len(notes)-1))

	switch {
	case key.Matches(keyMsg, keys.Up):
		if n.cursor > 0 {
			n.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if n.cursor < len(notes)-1 {
			n.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return n.showNewNoteForm()
	case key.Matches(keyMsg, keys.Delete):
		if len(notes) == 0 {
			return n, nil
		}
		entry, err := n.tracker.DeleteNote(notes[n.cursor].ID)
		if err != nil {
			return n, reportErr(err)
		}
		n.cursor = min(n.cursor, max(0, len(notes)-2))
		return n, changed(fmt.Sprintf("Moved %q to trash", entry.Title()))
	}
	return n, nil
}

func (n notesModel) showNewNoteForm() (notesModel, tea.Cmd) {
	*n.formTitle = ""
	*n.formContent = ""
	*n.formColor = string(model.NotePink)

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(n.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewText().Title("Content").Lines(6).Value(n.formContent),
			huh.NewSelect[string]().Title("Color").
				Options(
					huh.NewOption("Pink", string(model.NotePink)),
					huh.NewOption("Accent", string(model.NoteAccent)),
				).Value(n.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	if n.form.State == huh.StateCompleted {
		n.formActive = false
		note, err := n.tracker.AddNote(tracker.NoteInput{
			Title:   *n.formTitle,
			Content: *n.formContent,
			Color:   *n.formColor,
		})
		if err != nil {
			return n, reportErr(err)
		}
		n.cursor = len(n.tracker.Notes()) - 1
		return n, changed(fmt.Sprintf("Added note %q", note.Title))
	}

	return n, cmd
}

func (n notesModel) view() string {
	w := n.width - 4
	if n.formActive && n.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Note"), "", n.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Notes")
	notes := n.tracker.Notes()
	if len(notes) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No notes yet. Press n to write one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	cursor := min(n.cursor, len(notes)-1)
	var rows []string
	rows = append(rows, title, "")
	for i, note := range notes {
		prefix := "  "
		style := normalItemStyle
		if i == cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		stripe := noteStyle(note.Color).Render("▌")
		rows = append(rows, fmt.Sprintf("%s%s %s  %s",
			style.Render(prefix), stripe,
			style.Render(truncate(note.Title, 32)),
			mutedStyle.Render(note.Date+"  "+truncate(firstLine(note.Content), max(0, w-56))),
		))
	}

	selected := notes[cursor]
	body := selected.Content
	if strings.TrimSpace(body) == "" {
		body = mutedStyle.Render("(empty)")
	}
	preview := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(noteStyle(selected.Color).GetForeground()).
		PaddingLeft(1).
		Width(max(10, w-8)).
		Render(titleStyle.Render(selected.Title) + "\n" + body)

	rows = append(rows, "", preview, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
