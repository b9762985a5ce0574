package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TrashType records which live collection a trashed entity came from.
type TrashType string

const (
	TrashLesson TrashType = "lesson"
	TrashNote   TrashType = "note"
)

// TrashEntry holds a full copy of a deleted lesson or note. Exactly one of
// Lesson and Note is set, matching Type.
type TrashEntry struct {
	ID        string
	Type      TrashType
	Lesson    Lesson
	Note      *Note
	DeletedAt time.Time
}

// Title is the lesson name or the note title.
func (e TrashEntry) Title() string {
	switch e.Type {
	case TrashLesson:
		if e.Lesson != nil {
			return e.Lesson.Header().Name
		}
	case TrashNote:
		if e.Note != nil {
			return e.Note.Title
		}
	}
	return ""
}

type trashRecord struct {
	ID        string          `json:"id"`
	Type      TrashType       `json:"type"`
	Data      json.RawMessage `json:"data"`
	DeletedAt time.Time       `json:"deletedAt"`
}

func (e TrashEntry) MarshalJSON() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch e.Type {
	case TrashLesson:
		if e.Lesson == nil {
			return nil, fmt.Errorf("trash entry %s: missing lesson", e.ID)
		}
		data, err = json.Marshal(toRecord(e.Lesson))
	case TrashNote:
		if e.Note == nil {
			return nil, fmt.Errorf("trash entry %s: missing note", e.ID)
		}
		data, err = json.Marshal(e.Note)
	default:
		return nil, fmt.Errorf("trash entry %s: unknown type %q", e.ID, e.Type)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(trashRecord{ID: e.ID, Type: e.Type, Data: data, DeletedAt: e.DeletedAt})
}

func (e *TrashEntry) UnmarshalJSON(b []byte) error {
	var rec trashRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	*e = TrashEntry{ID: rec.ID, Type: rec.Type, DeletedAt: rec.DeletedAt}
	switch rec.Type {
	case TrashLesson:
		var lr lessonRecord
		if err := json.Unmarshal(rec.Data, &lr); err != nil {
			return fmt.Errorf("trash entry %s: %w", rec.ID, err)
		}
		e.Lesson = lr.lesson()
	case TrashNote:
		var n Note
		if err := json.Unmarshal(rec.Data, &n); err != nil {
			return fmt.Errorf("trash entry %s: %w", rec.ID, err)
		}
		e.Note = &n
	default:
		return fmt.Errorf("trash entry %s: unknown type %q", rec.ID, rec.Type)
	}
	return nil
}
