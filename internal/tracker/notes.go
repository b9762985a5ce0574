package tracker

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/store"
)

// Notes returns the live notes in insertion order.
func (t *Tracker) Notes() []model.Note {
	return append([]model.Note(nil), t.notes...)
}

func (t *Tracker) AddNote(in NoteInput) (model.Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := t.check(in); err != nil {
		return model.Note{}, err
	}
	color := model.NoteColor(in.Color)
	if color == "" {
		color = model.NotePink
	}

	n := model.Note{
		ID:      t.newID(),
		Title:   in.Title,
		Content: in.Content,
		Color:   color,
		Date:    t.now().Format(model.NoteDateLayout),
	}
	next := append(t.Notes(), n)
	blob, err := encode(next)
	if err != nil {
		return model.Note{}, fmt.Errorf("add note: encode notes: %w", err)
	}
	if err := t.commit("add note", map[string][]byte{store.KeyNotes: blob}); err != nil {
		return model.Note{}, err
	}
	t.notes = next
	t.log.Info("note added", slog.String("id", n.ID))
	return n, nil
}

func (t *Tracker) noteIndex(id string) int {
	for i, n := range t.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
