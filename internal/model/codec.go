package model

import (
	"encoding/json"

	"github.com/sadopc/studytrack/internal/absence"
)

// lessonRecord is the stored shape of a lesson: one flat object with a
// hasSubLessons discriminator.
type lessonRecord struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	HasSubLessons   bool              `json:"hasSubLessons"`
	TotalHours      int               `json:"totalHours,omitempty"`
	AbsenceRate     int               `json:"absenceRate,omitempty"`
	MaxAbsenceHours int               `json:"maxAbsenceHours,omitempty"`
	CurrentAbsence  int               `json:"currentAbsence,omitempty"`
	SubLessons      []subLessonRecord `json:"subLessons,omitempty"`
}

type subLessonRecord struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TotalHours      int    `json:"totalHours"`
	AbsenceRate     int    `json:"absenceRate,omitempty"`
	MaxAbsenceHours int    `json:"maxAbsenceHours"`
	CurrentAbsence  int    `json:"currentAbsence"`
}

func toRecord(l Lesson) lessonRecord {
	switch v := l.(type) {
	case SimpleLesson:
		return lessonRecord{
			ID:              v.ID,
			Name:            v.Name,
			TotalHours:      v.TotalHours,
			AbsenceRate:     v.AbsenceRate,
			MaxAbsenceHours: v.MaxAbsenceHours,
			CurrentAbsence:  v.CurrentAbsence,
		}
	case CompositeLesson:
		rec := lessonRecord{ID: v.ID, Name: v.Name, HasSubLessons: true}
		rec.SubLessons = make([]subLessonRecord, len(v.SubLessons))
		for i, s := range v.SubLessons {
			rec.SubLessons[i] = subLessonRecord(s)
		}
		return rec
	}
	return lessonRecord{}
}

// lesson decodes the record. Stored counters are clamped so that
// 0 <= current <= max holds whatever the blob says.
func (r lessonRecord) lesson() Lesson {
	h := LessonHeader{ID: r.ID, Name: r.Name}
	if r.HasSubLessons {
		subs := make([]SubLesson, len(r.SubLessons))
		for i, s := range r.SubLessons {
			s.MaxAbsenceHours, s.CurrentAbsence = clampCounter(s.MaxAbsenceHours, s.CurrentAbsence)
			subs[i] = SubLesson(s)
		}
		return CompositeLesson{LessonHeader: h, SubLessons: subs}
	}
	limit, cur := clampCounter(r.MaxAbsenceHours, r.CurrentAbsence)
	return SimpleLesson{
		LessonHeader:    h,
		TotalHours:      r.TotalHours,
		AbsenceRate:     r.AbsenceRate,
		MaxAbsenceHours: limit,
		CurrentAbsence:  cur,
	}
}

func clampCounter(limit, current int) (int, int) {
	c := absence.Adjust(absence.Counter{Current: current, Max: max(limit, 0)}, 0)
	return c.Max, c.Current
}

// MarshalLessons encodes lessons in their stored shape.
func MarshalLessons(lessons []Lesson) ([]byte, error) {
	recs := make([]lessonRecord, len(lessons))
	for i, l := range lessons {
		recs[i] = toRecord(l)
	}
	return json.Marshal(recs)
}

// UnmarshalLessons decodes the stored shape into lesson variants.
func UnmarshalLessons(b []byte) ([]Lesson, error) {
	var recs []lessonRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, err
	}
	lessons := make([]Lesson, 0, len(recs))
	for _, r := range recs {
		lessons = append(lessons, r.lesson())
	}
	return lessons, nil
}
