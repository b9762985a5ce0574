package tracker

import (
	"fmt"
	"log/slog"

	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/store"
)

// Trash returns the trash entries, oldest deletion first.
func (t *Tracker) Trash() []model.TrashEntry {
	out := make([]model.TrashEntry, len(t.trash))
	for i, e := range t.trash {
		out[i] = cloneEntry(e)
	}
	return out
}

// DeleteLesson moves the lesson into the trash. The live list and the trash
// are written in one batch.
func (t *Tracker) DeleteLesson(id string) (model.TrashEntry, error) {
	i := t.lessonIndex(id)
	if i < 0 {
		return model.TrashEntry{}, fmt.Errorf("lesson %s: %w", id, ErrNotFound)
	}
	entry := model.TrashEntry{
		ID:        t.newID(),
		Type:      model.TrashLesson,
		Lesson:    model.CloneLesson(t.lessons[i]),
		DeletedAt: t.now(),
	}

	lessons := cloneLessons(t.lessons)
	lessons = append(lessons[:i], lessons[i+1:]...)
	trash := append(t.Trash(), entry)

	lessonsBlob, err := model.MarshalLessons(lessons)
	if err != nil {
		return model.TrashEntry{}, fmt.Errorf("delete lesson: encode lessons: %w", err)
	}
	trashBlob, err := encode(trash)
	if err != nil {
		return model.TrashEntry{}, fmt.Errorf("delete lesson: encode trash: %w", err)
	}
	if err := t.commit("delete lesson", map[string][]byte{
		store.KeyLessons: lessonsBlob,
		store.KeyTrash:   trashBlob,
	}); err != nil {
		return model.TrashEntry{}, err
	}

	t.lessons, t.trash = lessons, trash
	t.log.Info("lesson moved to trash", slog.String("id", id), slog.String("trash_id", entry.ID))
	return cloneEntry(entry), nil
}

// DeleteNote moves the note into the trash.
func (t *Tracker) DeleteNote(id string) (model.TrashEntry, error) {
	i := t.noteIndex(id)
	if i < 0 {
		return model.TrashEntry{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	n := t.notes[i]
	entry := model.TrashEntry{
		ID:        t.newID(),
		Type:      model.TrashNote,
		Note:      &n,
		DeletedAt: t.now(),
	}

	notes := t.Notes()
	notes = append(notes[:i], notes[i+1:]...)
	trash := append(t.Trash(), entry)

	notesBlob, err := encode(notes)
	if err != nil {
		return model.TrashEntry{}, fmt.Errorf("delete note: encode notes: %w", err)
	}
	trashBlob, err := encode(trash)
	if err != nil {
		return model.TrashEntry{}, fmt.Errorf("delete note: encode trash: %w", err)
	}
	if err := t.commit("delete note", map[string][]byte{
		store.KeyNotes: notesBlob,
		store.KeyTrash: trashBlob,
	}); err != nil {
		return model.TrashEntry{}, err
	}

	t.notes, t.trash = notes, trash
	t.log.Info("note moved to trash", slog.String("id", id), slog.String("trash_id", entry.ID))
	return cloneEntry(entry), nil
}

// Restore puts the trashed entity back at the end of its live collection
// under its original identifier.
func (t *Tracker) Restore(trashID string) (model.TrashEntry, error) {
	i := t.trashIndex(trashID)
	if i < 0 {
		return model.TrashEntry{}, fmt.Errorf("trash entry %s: %w", trashID, ErrNotFound)
	}
	return t.restoreAt(i)
}

// RestoreAt is Restore addressed by position. Positions shift whenever the
// trash changes, so callers must not hold on to them.
func (t *Tracker) RestoreAt(index int) (model.TrashEntry, error) {
	if index < 0 || index >= len(t.trash) {
		return model.TrashEntry{}, fmt.Errorf("trash position %d: %w", index, ErrIndexOutOfRange)
	}
	return t.restoreAt(index)
}

func (t *Tracker) restoreAt(i int) (model.TrashEntry, error) {
	entry := cloneEntry(t.trash[i])
	trash := t.Trash()
	trash = append(trash[:i], trash[i+1:]...)

	trashBlob, err := encode(trash)
	if err != nil {
		return model.TrashEntry{}, fmt.Errorf("restore: encode trash: %w", err)
	}
	blobs := map[string][]byte{store.KeyTrash: trashBlob}

	var (
		lessons = t.lessons
		notes   = t.notes
	)
	switch entry.Type {
	case model.TrashLesson:
		lessons = append(cloneLessons(t.lessons), model.CloneLesson(entry.Lesson))
		blob, err := model.MarshalLessons(lessons)
		if err != nil {
			return model.TrashEntry{}, fmt.Errorf("restore: encode lessons: %w", err)
		}
		blobs[store.KeyLessons] = blob
	case model.TrashNote:
		notes = append(t.Notes(), *entry.Note)
		blob, err := encode(notes)
		if err != nil {
			return model.TrashEntry{}, fmt.Errorf("restore: encode notes: %w", err)
		}
		blobs[store.KeyNotes] = blob
	default:
		return model.TrashEntry{}, fmt.Errorf("restore: unknown trash type %q", entry.Type)
	}

	if err := t.commit("restore", blobs); err != nil {
		return model.TrashEntry{}, err
	}
	t.lessons, t.notes, t.trash = lessons, notes, trash
	t.log.Info("restored from trash", slog.String("trash_id", entry.ID), slog.String("type", string(entry.Type)))
	return entry, nil
}

// Purge removes a trash entry permanently.
func (t *Tracker) Purge(trashID string) error {
	i := t.trashIndex(trashID)
	if i < 0 {
		return fmt.Errorf("trash entry %s: %w", trashID, ErrNotFound)
	}
	return t.purgeAt(i)
}

// PurgeAt is Purge addressed by position.
func (t *Tracker) PurgeAt(index int) error {
	if index < 0 || index >= len(t.trash) {
		return fmt.Errorf("trash position %d: %w", index, ErrIndexOutOfRange)
	}
	return t.purgeAt(index)
}

func (t *Tracker) purgeAt(i int) error {
	id := t.trash[i].ID
	trash := t.Trash()
	trash = append(trash[:i], trash[i+1:]...)
	if err := t.saveTrash("purge", trash); err != nil {
		return err
	}
	t.trash = trash
	t.log.Info("trash entry purged", slog.String("trash_id", id))
	return nil
}

// PurgeAll empties the trash. Confirmation is the caller's job.
func (t *Tracker) PurgeAll() error {
	n := len(t.trash)
	if err := t.saveTrash("purge all", []model.TrashEntry{}); err != nil {
		return err
	}
	t.trash = nil
	t.log.Info("trash emptied", slog.Int("entries", n))
	return nil
}

func (t *Tracker) saveTrash(op string, trash []model.TrashEntry) error {
	if trash == nil {
		trash = []model.TrashEntry{}
	}
	blob, err := encode(trash)
	if err != nil {
		return fmt.Errorf("%s: encode trash: %w", op, err)
	}
	return t.commit(op, map[string][]byte{store.KeyTrash: blob})
}

func (t *Tracker) trashIndex(id string) int {
	for i, e := range t.trash {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func cloneEntry(e model.TrashEntry) model.TrashEntry {
	if e.Lesson != nil {
		e.Lesson = model.CloneLesson(e.Lesson)
	}
	if e.Note != nil {
		n := *e.Note
		e.Note = &n
	}
	return e
}
