// Package tracker owns every collection the application keeps: lessons,
// notes, trash, schedule, weekly plan, tasks and profile. All mutation goes
// through its methods, and each mutator writes the affected collections to
// the store before the new state becomes visible.
//
// A Tracker is not safe for concurrent use.
package tracker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/lib/logger/sl"
	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/store"
)

// Persister is the key-value contract the tracker needs from storage.
type Persister interface {
	Load(key string) ([]byte, bool, error)
	SaveBatch(blobs map[string][]byte) error
	Delete(key string) error
}

type Tracker struct {
	store      Persister
	log        *slog.Logger
	thresholds absence.Thresholds
	validate   *validator.Validate

	now   func() time.Time
	newID func() string

	// DefaultSubRate is applied to sub-lessons created with a zero rate.
	DefaultSubRate int

	lessons       []model.Lesson
	notes         []model.Note
	trash         []model.TrashEntry
	schedule      model.Schedule
	scheduleImage string
	plan          model.WeeklyPlan
	tasks         model.TaskBook
	profile       model.Profile
}

func New(p Persister, log *slog.Logger, th absence.Thresholds) *Tracker {
	return &Tracker{
		store:          p,
		log:            log.With(slog.String("component", "tracker")),
		thresholds:     th,
		validate:       validator.New(),
		now:            time.Now,
		newID:          func() string { return uuid.New().String() },
		DefaultSubRate: 30,
		schedule:       model.Schedule{},
		plan:           model.WeeklyPlan{},
		tasks:          model.TaskBook{},
	}
}

// Load reads every collection once. A blob that fails to parse is logged and
// treated as empty; only store failures are returned.
func (t *Tracker) Load() error {
	const op = "tracker.Load"

	blob, err := t.load(store.KeyLessons)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if blob != nil {
		lessons, err := model.UnmarshalLessons(blob)
		if err != nil {
			t.malformed(store.KeyLessons, err)
		} else {
			t.lessons = lessons
		}
	}

	decoders := []struct {
		key string
		dst any
	}{
		{store.KeyNotes, &t.notes},
		{store.KeyTrash, &t.trash},
		{store.KeySchedule, &t.schedule},
		{store.KeyScheduleImage, &t.scheduleImage},
		{store.KeyWeeklyPlan, &t.plan},
		{store.KeyTasks, &t.tasks},
		{store.KeyProfile, &t.profile},
	}
	for _, d := range decoders {
		blob, err := t.load(d.key)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if blob == nil {
			continue
		}
		if err := json.Unmarshal(blob, d.dst); err != nil {
			t.malformed(d.key, err)
			resetCollection(d.dst)
		}
	}

	if t.schedule == nil {
		t.schedule = model.Schedule{}
	}
	if t.plan == nil {
		t.plan = model.WeeklyPlan{}
	}
	if t.tasks == nil {
		t.tasks = model.TaskBook{}
	}
	// Entries written before trash entries had their own identifier.
	for i := range t.trash {
		if t.trash[i].ID == "" {
			t.trash[i].ID = t.newID()
		}
	}

	t.log.Debug("collections loaded",
		slog.Int("lessons", len(t.lessons)),
		slog.Int("notes", len(t.notes)),
		slog.Int("trash", len(t.trash)),
	)
	return nil
}

func (t *Tracker) load(key string) ([]byte, error) {
	blob, ok, err := t.store.Load(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return blob, nil
}

func (t *Tracker) malformed(key string, err error) {
	t.log.Warn("stored collection is malformed, starting empty",
		slog.String("key", key), sl.Err(err))
}

func resetCollection(dst any) {
	switch v := dst.(type) {
	case *[]model.Note:
		*v = nil
	case *[]model.TrashEntry:
		*v = nil
	case *model.Schedule:
		*v = model.Schedule{}
	case *string:
		*v = ""
	case *model.WeeklyPlan:
		*v = model.WeeklyPlan{}
	case *model.TaskBook:
		*v = model.TaskBook{}
	case *model.Profile:
		*v = model.Profile{}
	}
}

// commit writes blobs in one batch. On failure nothing in memory has changed
// yet and the caller must return the error.
func (t *Tracker) commit(op string, blobs map[string][]byte) error {
	if err := t.store.SaveBatch(blobs); err != nil {
		t.log.Error("save failed", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	return nil
}

func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (t *Tracker) Thresholds() absence.Thresholds { return t.thresholds }

// SetThresholds changes classification limits for subsequent reads.
func (t *Tracker) SetThresholds(th absence.Thresholds) { t.thresholds = th }

// Snapshot is a copy of every collection, used for backups.
type Snapshot struct {
	Lessons       []model.Lesson
	Notes         []model.Note
	Trash         []model.TrashEntry
	Schedule      model.Schedule
	ScheduleImage string
	WeeklyPlan    model.WeeklyPlan
	Tasks         model.TaskBook
	Profile       model.Profile
	Stats         absence.Stats
}

func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Lessons:       t.Lessons(),
		Notes:         t.Notes(),
		Trash:         t.Trash(),
		Schedule:      t.Schedule(),
		ScheduleImage: t.scheduleImage,
		WeeklyPlan:    t.WeeklyPlan(),
		Tasks:         t.tasks.Clone(),
		Profile:       t.profile,
		Stats:         t.Stats(),
	}
}
