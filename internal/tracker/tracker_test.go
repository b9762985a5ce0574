package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/store"
)

var errDiskFull = errors.New("disk full")

// flakyStore fails every write while fail is set.
type flakyStore struct {
	*store.Store
	fail   bool
	writes int
}

func (f *flakyStore) SaveBatch(blobs map[string][]byte) error {
	if f.fail {
		return errDiskFull
	}
	f.writes++
	return f.Store.SaveBatch(blobs)
}

func (f *flakyStore) Delete(key string) error {
	if f.fail {
		return errDiskFull
	}
	f.writes++
	return f.Store.Delete(key)
}

func newTestTracker(t *testing.T) (*Tracker, *flakyStore) {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	fs := &flakyStore{Store: s}
	tr := newTrackerOn(t, fs)
	return tr, fs
}

func newTrackerOn(t *testing.T, p Persister) *Tracker {
	t.Helper()
	tr := New(p, slog.New(slog.DiscardHandler), absence.DefaultThresholds())
	tr.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }
	seq := 0
	tr.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	require.NoError(t, tr.Load())
	return tr
}

func addSimple(t *testing.T, tr *Tracker, name string, total, rate int) model.SimpleLesson {
	t.Helper()
	l, err := tr.AddLesson(LessonInput{Name: name, TotalHours: total, AbsenceRate: rate})
	require.NoError(t, err)
	return l.(model.SimpleLesson)
}

func addNote(t *testing.T, tr *Tracker, title string) model.Note {
	t.Helper()
	n, err := tr.AddNote(NoteInput{Title: title, Content: "body of " + title})
	require.NoError(t, err)
	return n
}

// ============================================================
// Lessons and absence
// ============================================================

func TestAddSimpleLesson(t *testing.T) {
	tr, _ := newTestTracker(t)

	l := addSimple(t, tr, "  Physics ", 30, 20)
	assert.Equal(t, "Physics", l.Name)
	assert.Equal(t, 6, l.MaxAbsenceHours)
	assert.Equal(t, 0, l.CurrentAbsence)
	assert.NotEmpty(t, l.ID)
	assert.Len(t, tr.Lessons(), 1)
}

func TestAddLessonEmptyNameRejected(t *testing.T) {
	tr, fs := newTestTracker(t)

	_, err := tr.AddLesson(LessonInput{Name: "   ", TotalHours: 30, AbsenceRate: 20})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
	assert.Empty(t, tr.Lessons())
	assert.Zero(t, fs.writes, "rejected input must not reach the store")
}

func TestAddLessonRateOutOfRange(t *testing.T) {
	tr, _ := newTestTracker(t)

	_, err := tr.AddLesson(LessonInput{Name: "Chemistry", TotalHours: 30, AbsenceRate: 120})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddCompositeLesson(t *testing.T) {
	tr, _ := newTestTracker(t)

	l, err := tr.AddLesson(LessonInput{
		Name: "Biology",
		SubLessons: []SubLessonInput{
			{Name: "Theory", TotalHours: 42, AbsenceRate: Rate(20)},
			{TotalHours: 28},
		},
	})
	require.NoError(t, err)

	c, ok := l.(model.CompositeLesson)
	require.True(t, ok, "sub-lessons make a composite lesson")
	require.Len(t, c.SubLessons, 2)
	assert.Equal(t, 8, c.SubLessons[0].MaxAbsenceHours)
	assert.Equal(t, "Part 2", c.SubLessons[1].Name)
	assert.Equal(t, 30, c.SubLessons[1].AbsenceRate)
	assert.Equal(t, 8, c.SubLessons[1].MaxAbsenceHours)
	assert.NotEqual(t, c.SubLessons[0].ID, c.SubLessons[1].ID)
}

func TestAddCompositeLessonExplicitZeroRate(t *testing.T) {
	tr, _ := newTestTracker(t)

	l, err := tr.AddLesson(LessonInput{
		Name:       "Lab",
		SubLessons: []SubLessonInput{{Name: "Theory", TotalHours: 20, AbsenceRate: Rate(0)}},
	})
	require.NoError(t, err)

	sub := l.(model.CompositeLesson).SubLessons[0]
	assert.Equal(t, 0, sub.AbsenceRate, "an explicit 0 is not replaced by the default")
	assert.Equal(t, 0, sub.MaxAbsenceHours)
}

func TestAddCompositeLessonSubRateOutOfRange(t *testing.T) {
	tr, _ := newTestTracker(t)

	_, err := tr.AddLesson(LessonInput{
		Name:       "Lab",
		SubLessons: []SubLessonInput{{Name: "Theory", TotalHours: 20, AbsenceRate: Rate(101)}},
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, tr.Lessons())
}

func TestAbsenceScenario(t *testing.T) {
	tr, _ := newTestTracker(t)
	l := addSimple(t, tr, "Maths", 30, 20)

	var err error
	for range 3 {
		l, err = tr.AdjustAbsence(l.ID, +1)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, l.CurrentAbsence)
	assert.Equal(t, 3, absence.Remaining(l.Counter()))
	assert.Equal(t, absence.Safe, tr.Thresholds().Classify(l.Counter()))

	for range 2 {
		l, err = tr.AdjustAbsence(l.ID, +1)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, l.CurrentAbsence)
	assert.Equal(t, absence.Warning, tr.Thresholds().Classify(l.Counter()))
	assert.True(t, tr.Thresholds().IsCritical(l.Counter()))
	assert.Equal(t, 1, tr.Stats().Critical)
}

func TestAdjustAbsenceClampsWithoutWrite(t *testing.T) {
	tr, fs := newTestTracker(t)
	l := addSimple(t, tr, "History", 10, 20)

	for range 5 {
		_, err := tr.AdjustAbsence(l.ID, +1)
		require.NoError(t, err)
	}
	writes := fs.writes
	got, err := tr.AdjustAbsence(l.ID, +1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentAbsence)
	assert.Equal(t, writes, fs.writes, "a clamped no-op should not save")

	got, err = tr.AdjustAbsence(l.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentAbsence)
}

func TestAdjustAbsenceErrors(t *testing.T) {
	tr, _ := newTestTracker(t)

	_, err := tr.AdjustAbsence("missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	l, err := tr.AddLesson(LessonInput{Name: "Art", SubLessons: []SubLessonInput{{Name: "Studio", TotalHours: 10}}})
	require.NoError(t, err)
	_, err = tr.AdjustAbsence(l.Header().ID, 1)
	assert.ErrorIs(t, err, ErrVariant)

	simple := addSimple(t, tr, "Music", 10, 30)
	_, err = tr.AdjustSubAbsence(simple.ID, "x", 1)
	assert.ErrorIs(t, err, ErrVariant)

	_, err = tr.AdjustSubAbsence(l.Header().ID, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompositeCriticalCount(t *testing.T) {
	tr, _ := newTestTracker(t)

	l, err := tr.AddLesson(LessonInput{
		Name: "Medicine",
		SubLessons: []SubLessonInput{
			{Name: "Lab", TotalHours: 100, AbsenceRate: Rate(20)},
			{Name: "Lecture", TotalHours: 50, AbsenceRate: Rate(20)},
		},
	})
	require.NoError(t, err)
	c := l.(model.CompositeLesson)

	_, err = tr.AdjustSubAbsence(c.ID, c.SubLessons[0].ID, 19)
	require.NoError(t, err)
	_, err = tr.AdjustSubAbsence(c.ID, c.SubLessons[1].ID, 4)
	require.NoError(t, err)

	units := tr.Units()
	require.Len(t, units, 2, "the parent is not a unit")
	assert.Equal(t, absence.Danger, tr.UnitStatus(units[0]))
	assert.Equal(t, absence.Safe, tr.UnitStatus(units[1]))

	stats := tr.Stats()
	assert.Equal(t, 1, stats.Critical)
	assert.Equal(t, 23, stats.TotalAbsence)
	assert.Equal(t, 30, stats.TotalMax)
}

func TestSetThresholds(t *testing.T) {
	tr, _ := newTestTracker(t)
	l := addSimple(t, tr, "Latin", 10, 100)
	_, err := tr.AdjustAbsence(l.ID, 8)
	require.NoError(t, err)
	require.Equal(t, 1, tr.Stats().Critical)

	tr.SetThresholds(absence.Thresholds{Warning: 0.7, Danger: 0.9, Critical: 0.85})
	assert.Equal(t, 0, tr.Stats().Critical)
}

func TestLessonsReturnsCopies(t *testing.T) {
	tr, _ := newTestTracker(t)
	l, err := tr.AddLesson(LessonInput{Name: "Geo", SubLessons: []SubLessonInput{{Name: "Maps", TotalHours: 10}}})
	require.NoError(t, err)

	got := tr.Lessons()[0].(model.CompositeLesson)
	got.SubLessons[0].CurrentAbsence = 99

	fresh, ok := tr.Lesson(l.Header().ID)
	require.True(t, ok)
	assert.Equal(t, 0, fresh.(model.CompositeLesson).SubLessons[0].CurrentAbsence)
}

// ============================================================
// Notes
// ============================================================

func TestAddNote(t *testing.T) {
	tr, _ := newTestTracker(t)

	n := addNote(t, tr, "Exam dates")
	assert.Equal(t, model.NotePink, n.Color)
	assert.Equal(t, "19.10.2026", n.Date)

	_, err := tr.AddNote(NoteInput{Title: "x", Color: "green"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = tr.AddNote(NoteInput{Title: ""})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, tr.Notes(), 1)
}

// ============================================================
// Trash lifecycle
// ============================================================

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	tr, _ := newTestTracker(t)
	l := addSimple(t, tr, "Physics", 30, 20)
	l, err := tr.AdjustAbsence(l.ID, 2)
	require.NoError(t, err)
	before := len(tr.Trash())

	entry, err := tr.DeleteLesson(l.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TrashLesson, entry.Type)
	assert.Empty(t, tr.Lessons())
	require.Len(t, tr.Trash(), before+1)

	restored, err := tr.RestoreAt(len(tr.Trash()) - 1)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, restored.ID)
	assert.Len(t, tr.Trash(), before)

	got, ok := tr.Lesson(l.ID)
	require.True(t, ok, "restored lesson keeps its identifier")
	assert.Equal(t, l, got)
}

func TestPurgeThenRestoreOutOfRange(t *testing.T) {
	tr, _ := newTestTracker(t)
	n := addNote(t, tr, "Shopping")
	_, err := tr.DeleteNote(n.ID)
	require.NoError(t, err)

	require.NoError(t, tr.PurgeAt(0))
	_, err = tr.RestoreAt(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Empty(t, tr.Notes())
}

func TestTrashFIFO(t *testing.T) {
	tr, _ := newTestTracker(t)
	first := addNote(t, tr, "First")
	second := addNote(t, tr, "Second")

	_, err := tr.DeleteNote(first.ID)
	require.NoError(t, err)
	_, err = tr.DeleteNote(second.ID)
	require.NoError(t, err)

	entry, err := tr.RestoreAt(0)
	require.NoError(t, err)
	assert.Equal(t, first, *entry.Note)
	require.Len(t, tr.Notes(), 1)
	assert.Equal(t, first.ID, tr.Notes()[0].ID)
}

func TestRestoreAndPurgeByID(t *testing.T) {
	tr, _ := newTestTracker(t)
	a := addNote(t, tr, "A")
	b := addSimple(t, tr, "B", 20, 20)

	ea, err := tr.DeleteNote(a.ID)
	require.NoError(t, err)
	eb, err := tr.DeleteLesson(b.ID)
	require.NoError(t, err)

	// Removing the first entry shifts positions; IDs stay valid.
	require.NoError(t, tr.Purge(ea.ID))
	_, err = tr.Restore(ea.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tr.Restore(eb.ID)
	require.NoError(t, err)
	assert.Empty(t, tr.Trash())
	assert.Len(t, tr.Lessons(), 1)

	assert.ErrorIs(t, tr.Purge("nope"), ErrNotFound)
}

func TestDeleteMissing(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.DeleteLesson("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tr.DeleteNote("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, tr.PurgeAt(-1), ErrIndexOutOfRange)
	_, err = tr.RestoreAt(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPurgeAll(t *testing.T) {
	tr, _ := newTestTracker(t)
	for _, title := range []string{"a", "b", "c"} {
		n := addNote(t, tr, title)
		_, err := tr.DeleteNote(n.ID)
		require.NoError(t, err)
	}
	require.Len(t, tr.Trash(), 3)

	require.NoError(t, tr.PurgeAll())
	assert.Empty(t, tr.Trash())
	require.NoError(t, tr.PurgeAll(), "emptying an empty trash is fine")
}

// ============================================================
// Persistence
// ============================================================

func TestReloadFromStore(t *testing.T) {
	tr, fs := newTestTracker(t)
	l := addSimple(t, tr, "Physics", 30, 20)
	_, err := tr.AdjustAbsence(l.ID, 4)
	require.NoError(t, err)
	n := addNote(t, tr, "Keep")
	gone := addNote(t, tr, "Gone")
	_, err = tr.DeleteNote(gone.ID)
	require.NoError(t, err)
	_, err = tr.AddTask(model.WeekOf(tr.now()), model.Monday, "Read chapter 3")
	require.NoError(t, err)
	_, err = tr.SaveProfile(ProfileInput{Name: "Ada Lovelace", School: "Analytical"})
	require.NoError(t, err)

	again := newTrackerOn(t, fs)
	assert.Equal(t, tr.Lessons(), again.Lessons())
	assert.Equal(t, []model.Note{n}, again.Notes())
	require.Len(t, again.Trash(), 1)
	assert.Equal(t, gone, *again.Trash()[0].Note)
	assert.Equal(t, tr.TasksFor(model.WeekOf(tr.now())), again.TasksFor(model.WeekOf(tr.now())))
	assert.Equal(t, "AL", again.Profile().Initials())
}

func TestMalformedBlobLoadsEmpty(t *testing.T) {
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Save(store.KeyLessons, []byte(`{not json`)))
	require.NoError(t, s.Save(store.KeyNotes, []byte(`[{"id":"n1","title":"ok"}]`)))
	require.NoError(t, s.Save(store.KeyTrash, []byte(`"oops"`)))
	require.NoError(t, s.Save(store.KeyTasks, []byte(`[1,2]`)))

	tr := newTrackerOn(t, &flakyStore{Store: s})
	assert.Empty(t, tr.Lessons())
	assert.Len(t, tr.Notes(), 1)
	assert.Empty(t, tr.Trash())
	assert.Empty(t, tr.TasksFor("2026-W43"))

	// The tracker stays usable after a bad load.
	addSimple(t, tr, "Fresh", 10, 30)
}

func TestLoadClampsOverCapCounter(t *testing.T) {
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	blob := `[{"id":"a","name":"Maths","totalHours":30,"absenceRate":20,"maxAbsenceHours":6,"currentAbsence":9}]`
	require.NoError(t, s.Save(store.KeyLessons, []byte(blob)))

	tr := newTrackerOn(t, &flakyStore{Store: s})
	l, ok := tr.Lesson("a")
	require.True(t, ok)
	assert.Equal(t, absence.Counter{Current: 6, Max: 6}, l.(model.SimpleLesson).Counter())

	st := tr.Stats()
	assert.Equal(t, 6, st.TotalAbsence)
	assert.LessOrEqual(t, st.AverageUsage(), 100.0)
}

func TestLegacyTrashGetsIDs(t *testing.T) {
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	legacy := `[{"type":"note","data":{"id":"n1","title":"Old"},"deletedAt":"2024-03-01T10:00:00Z"}]`
	require.NoError(t, s.Save(store.KeyTrash, []byte(legacy)))

	tr := newTrackerOn(t, &flakyStore{Store: s})
	trash := tr.Trash()
	require.Len(t, trash, 1)
	assert.NotEmpty(t, trash[0].ID)

	_, err = tr.Restore(trash[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "n1", tr.Notes()[0].ID)
}

func TestPersistenceFailureLeavesMemoryIntact(t *testing.T) {
	tr, fs := newTestTracker(t)
	l := addSimple(t, tr, "Physics", 30, 20)
	n := addNote(t, tr, "Note")

	fs.fail = true

	_, err := tr.DeleteLesson(l.ID)
	require.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Len(t, tr.Lessons(), 1)
	assert.Empty(t, tr.Trash())

	_, err = tr.AdjustAbsence(l.ID, 1)
	require.ErrorIs(t, err, ErrPersistence)
	got, _ := tr.Lesson(l.ID)
	assert.Equal(t, 0, got.(model.SimpleLesson).CurrentAbsence)

	_, err = tr.AddNote(NoteInput{Title: "late"})
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, []model.Note{n}, tr.Notes())

	fs.fail = false
	_, err = tr.DeleteNote(n.ID)
	require.NoError(t, err)

	fs.fail = true
	_, err = tr.RestoreAt(0)
	require.ErrorIs(t, err, ErrPersistence)
	assert.Len(t, tr.Trash(), 1)
	assert.Empty(t, tr.Notes())
	require.ErrorIs(t, tr.PurgeAll(), ErrPersistence)
	assert.Len(t, tr.Trash(), 1)

	// The store still holds the last committed state.
	again := newTrackerOn(t, &flakyStore{Store: fs.Store})
	assert.Len(t, again.Lessons(), 1)
	assert.Empty(t, again.Notes())
	assert.Len(t, again.Trash(), 1)
}

// ============================================================
// Planner
// ============================================================

func TestSchedule(t *testing.T) {
	tr, _ := newTestTracker(t)
	assert.False(t, tr.HasSchedule())

	require.NoError(t, tr.SetSchedule(model.Schedule{model.Monday: "Maths 9:00", model.Friday: "Lab"}))
	assert.True(t, tr.HasSchedule())
	assert.Equal(t, "Lab", tr.Schedule()[model.Friday])

	err := tr.SetSchedule(model.Schedule{model.Sunday: "rest"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Maths 9:00", tr.Schedule()[model.Monday])
}

func TestScheduleImage(t *testing.T) {
	tr, fs := newTestTracker(t)
	require.NoError(t, tr.SetScheduleImage("data:image/jpeg;base64,AAAA"))
	assert.Equal(t, "data:image/jpeg;base64,AAAA", tr.ScheduleImage())
	assert.ErrorIs(t, tr.SetScheduleImage(""), ErrValidation)

	require.NoError(t, tr.ClearScheduleImage())
	assert.Empty(t, tr.ScheduleImage())
	_, ok, err := fs.Load(store.KeyScheduleImage)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWeeklyPlan(t *testing.T) {
	tr, _ := newTestTracker(t)
	require.NoError(t, tr.SetWeeklyPlan(model.WeeklyPlan{model.Monday: " revise ", model.Sunday: "rest"}))

	day, text := tr.TodayPlan(tr.now())
	assert.Equal(t, model.Monday, day)
	assert.Equal(t, "revise", text)

	assert.ErrorIs(t, tr.SetWeeklyPlan(model.WeeklyPlan{"someday": "x"}), ErrValidation)

	require.NoError(t, tr.ClearWeeklyPlan())
	_, text = tr.TodayPlan(tr.now())
	assert.Empty(t, text)
}

func TestTasks(t *testing.T) {
	tr, _ := newTestTracker(t)
	week := model.WeekOf(tr.now())

	a, err := tr.AddTask(week, model.Tuesday, "Essay")
	require.NoError(t, err)
	_, err = tr.AddTask(week, model.Tuesday, "Flashcards")
	require.NoError(t, err)

	_, err = tr.AddTask(week, model.Tuesday, "  ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = tr.AddTask(week, "funday", "x")
	assert.ErrorIs(t, err, ErrValidation)

	toggled, err := tr.ToggleTask(week, model.Tuesday, a.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	done, total := tr.TaskProgress(week, model.Tuesday)
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)

	require.NoError(t, tr.DeleteTask(week, model.Tuesday, a.ID))
	assert.ErrorIs(t, tr.DeleteTask(week, model.Tuesday, a.ID), ErrNotFound)
	_, err = tr.ToggleTask(week, model.Tuesday, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, tr.TasksFor(week)[model.Tuesday], 1)
}

func TestTasksIsolatedByWeek(t *testing.T) {
	tr, _ := newTestTracker(t)
	this := model.WeekOf(tr.now())
	next := model.WeekOf(tr.now().AddDate(0, 0, 7))
	require.NotEqual(t, this, next)

	_, err := tr.AddTask(this, model.Monday, "This week")
	require.NoError(t, err)

	assert.Empty(t, tr.TasksFor(next))
	done, total := tr.TaskProgress(next, model.Monday)
	assert.Zero(t, done)
	assert.Zero(t, total)
}

// ============================================================
// Profile
// ============================================================

func TestProfile(t *testing.T) {
	tr, _ := newTestTracker(t)
	assert.False(t, tr.HasProfile())

	_, err := tr.SaveProfile(ProfileInput{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, tr.SetProfilePhoto("data:image/jpeg;base64,BBBB"))
	p, err := tr.SaveProfile(ProfileInput{Name: "Grace Hopper", School: "Yale", Department: "Maths", Grade: "PhD"})
	require.NoError(t, err)
	assert.True(t, tr.HasProfile())
	assert.Equal(t, "GH", p.Initials())
	assert.Equal(t, "Yale - Maths (PhD)", p.Affiliation())
	assert.Equal(t, "data:image/jpeg;base64,BBBB", p.Photo, "saving text fields keeps the photo")

	require.NoError(t, tr.SetProfilePhoto(""))
	assert.Empty(t, tr.Profile().Photo)
}

func TestSnapshot(t *testing.T) {
	tr, _ := newTestTracker(t)
	addSimple(t, tr, "Physics", 30, 20)
	addNote(t, tr, "n")
	require.NoError(t, tr.SetSchedule(model.Schedule{model.Monday: "x"}))

	snap := tr.Snapshot()
	assert.Len(t, snap.Lessons, 1)
	assert.Len(t, snap.Notes, 1)
	assert.Equal(t, "x", snap.Schedule[model.Monday])
}
