package tracker

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/store"
)

// Lessons returns a deep copy of the live lessons in insertion order.
func (t *Tracker) Lessons() []model.Lesson {
	return cloneLessons(t.lessons)
}

// Lesson returns the lesson with id.
func (t *Tracker) Lesson(id string) (model.Lesson, bool) {
	i := t.lessonIndex(id)
	if i < 0 {
		return nil, false
	}
	return model.CloneLesson(t.lessons[i]), true
}

// Units expands the live lessons into counted units.
func (t *Tracker) Units() []model.Unit {
	return model.Units(t.lessons)
}

// Stats folds every unit into the dashboard aggregate.
func (t *Tracker) Stats() absence.Stats {
	return t.thresholds.Fold(model.Counters(t.Units()))
}

// UnitStatus classifies one unit with the current thresholds.
func (t *Tracker) UnitStatus(u model.Unit) absence.Status {
	return t.thresholds.Classify(u.Counter)
}

func (t *Tracker) AddLesson(in LessonInput) (model.Lesson, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := t.check(in); err != nil {
		return nil, err
	}

	h := model.LessonHeader{ID: t.newID(), Name: in.Name}
	var l model.Lesson
	if len(in.SubLessons) > 0 {
		subs := make([]model.SubLesson, len(in.SubLessons))
		for i, s := range in.SubLessons {
			rate := t.DefaultSubRate
			if s.AbsenceRate != nil {
				rate = *s.AbsenceRate
			}
			name := strings.TrimSpace(s.Name)
			if name == "" {
				name = fmt.Sprintf("Part %d", i+1)
			}
			subs[i] = model.SubLesson{
				ID:              t.newID(),
				Name:            name,
				TotalHours:      s.TotalHours,
				AbsenceRate:     rate,
				MaxAbsenceHours: absence.MaxHours(s.TotalHours, rate),
			}
		}
		l = model.CompositeLesson{LessonHeader: h, SubLessons: subs}
	} else {
		l = model.SimpleLesson{
			LessonHeader:    h,
			TotalHours:      in.TotalHours,
			AbsenceRate:     in.AbsenceRate,
			MaxAbsenceHours: absence.MaxHours(in.TotalHours, in.AbsenceRate),
		}
	}

	next := append(cloneLessons(t.lessons), l)
	if err := t.saveLessons("add lesson", next); err != nil {
		return nil, err
	}
	t.lessons = next
	t.log.Info("lesson added", slog.String("id", h.ID), slog.String("name", h.Name))
	return model.CloneLesson(l), nil
}

// AdjustAbsence moves a simple lesson's counter by delta, clamped to its
// allowance.
func (t *Tracker) AdjustAbsence(lessonID string, delta int) (model.SimpleLesson, error) {
	i := t.lessonIndex(lessonID)
	if i < 0 {
		return model.SimpleLesson{}, fmt.Errorf("lesson %s: %w", lessonID, ErrNotFound)
	}
	l, ok := t.lessons[i].(model.SimpleLesson)
	if !ok {
		return model.SimpleLesson{}, fmt.Errorf("lesson %s has sub-lessons: %w", lessonID, ErrVariant)
	}

	updated := l.WithCounter(absence.Adjust(l.Counter(), delta))
	if updated == l {
		return l, nil
	}

	next := cloneLessons(t.lessons)
	next[i] = updated
	if err := t.saveLessons("adjust absence", next); err != nil {
		return model.SimpleLesson{}, err
	}
	t.lessons = next
	return updated, nil
}

// AdjustSubAbsence moves one sub-lesson's counter by delta.
func (t *Tracker) AdjustSubAbsence(lessonID, subID string, delta int) (model.SubLesson, error) {
	i := t.lessonIndex(lessonID)
	if i < 0 {
		return model.SubLesson{}, fmt.Errorf("lesson %s: %w", lessonID, ErrNotFound)
	}
	l, ok := t.lessons[i].(model.CompositeLesson)
	if !ok {
		return model.SubLesson{}, fmt.Errorf("lesson %s has no sub-lessons: %w", lessonID, ErrVariant)
	}
	j := l.SubLessonIndex(subID)
	if j < 0 {
		return model.SubLesson{}, fmt.Errorf("sub-lesson %s: %w", subID, ErrNotFound)
	}

	sub := l.SubLessons[j]
	updated := sub.WithCounter(absence.Adjust(sub.Counter(), delta))
	if updated == sub {
		return sub, nil
	}

	l = model.CloneLesson(l).(model.CompositeLesson)
	l.SubLessons[j] = updated
	next := cloneLessons(t.lessons)
	next[i] = l
	if err := t.saveLessons("adjust sub-lesson absence", next); err != nil {
		return model.SubLesson{}, err
	}
	t.lessons = next
	return updated, nil
}

func (t *Tracker) saveLessons(op string, lessons []model.Lesson) error {
	blob, err := model.MarshalLessons(lessons)
	if err != nil {
		return fmt.Errorf("%s: encode lessons: %w", op, err)
	}
	return t.commit(op, map[string][]byte{store.KeyLessons: blob})
}

func (t *Tracker) lessonIndex(id string) int {
	for i, l := range t.lessons {
		if l.Header().ID == id {
			return i
		}
	}
	return -1
}

func cloneLessons(in []model.Lesson) []model.Lesson {
	if in == nil {
		return nil
	}
	out := make([]model.Lesson, len(in))
	for i, l := range in {
		out[i] = model.CloneLesson(l)
	}
	return out
}
