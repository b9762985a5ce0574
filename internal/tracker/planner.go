package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/store"
)

// Schedule returns the lesson schedule for the five weekdays.
func (t *Tracker) Schedule() model.Schedule {
	out := make(model.Schedule, len(t.schedule))
	for k, v := range t.schedule {
		out[k] = v
	}
	return out
}

// HasSchedule reports whether any weekday has text.
func (t *Tracker) HasSchedule() bool {
	for _, d := range model.Weekdays {
		if strings.TrimSpace(t.schedule[d]) != "" {
			return true
		}
	}
	return false
}

// SetSchedule replaces the schedule. Only weekday keys are accepted.
func (t *Tracker) SetSchedule(s model.Schedule) error {
	next := model.Schedule{}
	for k, v := range s {
		if !isWeekday(k) {
			return fmt.Errorf("%w: %q is not a weekday", ErrValidation, k)
		}
		next[k] = v
	}
	blob, err := encode(next)
	if err != nil {
		return fmt.Errorf("set schedule: %w", err)
	}
	if err := t.commit("set schedule", map[string][]byte{store.KeySchedule: blob}); err != nil {
		return err
	}
	t.schedule = next
	return nil
}

func (t *Tracker) ScheduleImage() string { return t.scheduleImage }

// SetScheduleImage stores a data URL (see package media) shown in place of
// the text schedule.
func (t *Tracker) SetScheduleImage(dataURL string) error {
	if dataURL == "" {
		return fmt.Errorf("%w: empty image", ErrValidation)
	}
	blob, err := encode(dataURL)
	if err != nil {
		return fmt.Errorf("set schedule image: %w", err)
	}
	if err := t.commit("set schedule image", map[string][]byte{store.KeyScheduleImage: blob}); err != nil {
		return err
	}
	t.scheduleImage = dataURL
	return nil
}

func (t *Tracker) ClearScheduleImage() error {
	if err := t.store.Delete(store.KeyScheduleImage); err != nil {
		return fmt.Errorf("clear schedule image: %w: %w", ErrPersistence, err)
	}
	t.scheduleImage = ""
	return nil
}

func (t *Tracker) WeeklyPlan() model.WeeklyPlan {
	out := make(model.WeeklyPlan, len(t.plan))
	for k, v := range t.plan {
		out[k] = v
	}
	return out
}

// SetWeeklyPlan replaces the free-text plan for the week.
func (t *Tracker) SetWeeklyPlan(p model.WeeklyPlan) error {
	next := model.WeeklyPlan{}
	for k, v := range p {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown day %q", ErrValidation, k)
		}
		next[k] = v
	}
	if err := t.savePlan("set weekly plan", next); err != nil {
		return err
	}
	t.plan = next
	return nil
}

func (t *Tracker) ClearWeeklyPlan() error {
	if err := t.savePlan("clear weekly plan", model.WeeklyPlan{}); err != nil {
		return err
	}
	t.plan = model.WeeklyPlan{}
	return nil
}

// TodayPlan returns the plan text for now's weekday.
func (t *Tracker) TodayPlan(now time.Time) (model.DayKey, string) {
	day := model.DayOf(now)
	return day, strings.TrimSpace(t.plan[day])
}

func (t *Tracker) savePlan(op string, p model.WeeklyPlan) error {
	blob, err := encode(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return t.commit(op, map[string][]byte{store.KeyWeeklyPlan: blob})
}

// TasksFor returns a copy of the week's tasks by day.
func (t *Tracker) TasksFor(week model.WeekKey) map[model.DayKey][]model.Task {
	out := make(map[model.DayKey][]model.Task)
	for d, tasks := range t.tasks[week] {
		out[d] = append([]model.Task(nil), tasks...)
	}
	return out
}

// TaskProgress returns completed and total task counts for one day.
func (t *Tracker) TaskProgress(week model.WeekKey, day model.DayKey) (done, total int) {
	for _, task := range t.tasks[week][day] {
		total++
		if task.Completed {
			done++
		}
	}
	return done, total
}

func (t *Tracker) AddTask(week model.WeekKey, day model.DayKey, text string) (model.Task, error) {
	in := taskInput{Text: strings.TrimSpace(text), Day: string(day)}
	if err := t.check(in); err != nil {
		return model.Task{}, err
	}
	task := model.Task{ID: t.newID(), Text: in.Text}

	next := t.tasks.Clone()
	if next[week] == nil {
		next[week] = map[model.DayKey][]model.Task{}
	}
	next[week][day] = append(next[week][day], task)
	if err := t.saveTasks("add task", next); err != nil {
		return model.Task{}, err
	}
	t.tasks = next
	return task, nil
}

// ToggleTask flips a task's completion flag.
func (t *Tracker) ToggleTask(week model.WeekKey, day model.DayKey, id string) (model.Task, error) {
	j := taskIndex(t.tasks[week][day], id)
	if j < 0 {
		return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	next := t.tasks.Clone()
	next[week][day][j].Completed = !next[week][day][j].Completed
	if err := t.saveTasks("toggle task", next); err != nil {
		return model.Task{}, err
	}
	t.tasks = next
	return next[week][day][j], nil
}

func (t *Tracker) DeleteTask(week model.WeekKey, day model.DayKey, id string) error {
	j := taskIndex(t.tasks[week][day], id)
	if j < 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	next := t.tasks.Clone()
	tasks := next[week][day]
	next[week][day] = append(tasks[:j], tasks[j+1:]...)
	if err := t.saveTasks("delete task", next); err != nil {
		return err
	}
	t.tasks = next
	return nil
}

func (t *Tracker) saveTasks(op string, b model.TaskBook) error {
	blob, err := encode(b)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return t.commit(op, map[string][]byte{store.KeyTasks: blob})
}

func taskIndex(tasks []model.Task, id string) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func isWeekday(d model.DayKey) bool {
	for _, w := range model.Weekdays {
		if w == d {
			return true
		}
	}
	return false
}
