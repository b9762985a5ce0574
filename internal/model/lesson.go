// Package model holds the tracker's entities and the JSON shape they are
// stored in.
package model

import "github.com/sadopc/studytrack/internal/absence"

// Lesson is either a SimpleLesson or a CompositeLesson. The interface is
// sealed; no other type satisfies it.
type Lesson interface {
	Header() LessonHeader
	isLesson()
}

// LessonHeader is shared by both lesson variants.
type LessonHeader struct {
	ID   string
	Name string
}

func (h LessonHeader) Header() LessonHeader { return h }

// SimpleLesson carries flat absence counters.
type SimpleLesson struct {
	LessonHeader
	TotalHours      int
	AbsenceRate     int
	MaxAbsenceHours int
	CurrentAbsence  int
}

func (SimpleLesson) isLesson() {}

func (l SimpleLesson) Counter() absence.Counter {
	return absence.Counter{Current: l.CurrentAbsence, Max: l.MaxAbsenceHours}
}

// WithCounter returns l with CurrentAbsence taken from c.
func (l SimpleLesson) WithCounter(c absence.Counter) SimpleLesson {
	l.CurrentAbsence = c.Current
	return l
}

// CompositeLesson owns an ordered list of sub-lessons, each with its own
// allowance.
type CompositeLesson struct {
	LessonHeader
	SubLessons []SubLesson
}

func (CompositeLesson) isLesson() {}

// SubLesson is a part of a composite lesson (e.g. theory, practice).
type SubLesson struct {
	ID              string
	Name            string
	TotalHours      int
	AbsenceRate     int
	MaxAbsenceHours int
	CurrentAbsence  int
}

func (s SubLesson) Counter() absence.Counter {
	return absence.Counter{Current: s.CurrentAbsence, Max: s.MaxAbsenceHours}
}

func (s SubLesson) WithCounter(c absence.Counter) SubLesson {
	s.CurrentAbsence = c.Current
	return s
}

// SubLessonIndex returns the position of the sub-lesson with id, or -1.
func (l CompositeLesson) SubLessonIndex(id string) int {
	for i, s := range l.SubLessons {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CloneLesson returns a deep copy so callers cannot alias sub-lesson slices.
func CloneLesson(l Lesson) Lesson {
	switch v := l.(type) {
	case CompositeLesson:
		v.SubLessons = append([]SubLesson(nil), v.SubLessons...)
		return v
	default:
		return l
	}
}

// Unit is one counted item on the dashboard: a simple lesson, or one part of
// a composite lesson.
type Unit struct {
	LessonID   string
	LessonName string
	SubID      string
	SubName    string
	Counter    absence.Counter
}

// Label is "Lesson" or "Lesson / Part".
func (u Unit) Label() string {
	if u.SubName == "" {
		return u.LessonName
	}
	return u.LessonName + " / " + u.SubName
}

// Units expands lessons into counted units. Composite lessons contribute one
// unit per sub-lesson and nothing for themselves.
func Units(lessons []Lesson) []Unit {
	var units []Unit
	for _, l := range lessons {
		switch v := l.(type) {
		case SimpleLesson:
			units = append(units, Unit{
				LessonID:   v.ID,
				LessonName: v.Name,
				Counter:    v.Counter(),
			})
		case CompositeLesson:
			for _, s := range v.SubLessons {
				units = append(units, Unit{
					LessonID:   v.ID,
					LessonName: v.Name,
					SubID:      s.ID,
					SubName:    s.Name,
					Counter:    s.Counter(),
				})
			}
		}
	}
	return units
}

// Counters strips units down to their counters for absence.Fold.
func Counters(units []Unit) []absence.Counter {
	out := make([]absence.Counter, len(units))
	for i, u := range units {
		out[i] = u.Counter
	}
	return out
}
