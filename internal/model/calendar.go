package model

import (
	"fmt"
	"time"
)

// DayKey names a day of the week in stored maps.
type DayKey string

const (
	Monday    DayKey = "monday"
	Tuesday   DayKey = "tuesday"
	Wednesday DayKey = "wednesday"
	Thursday  DayKey = "thursday"
	Friday    DayKey = "friday"
	Saturday  DayKey = "saturday"
	Sunday    DayKey = "sunday"
)

// Weekdays are the five school days used by the lesson schedule.
var Weekdays = []DayKey{Monday, Tuesday, Wednesday, Thursday, Friday}

// AllDays are the seven days used by the weekly plan and task planner.
var AllDays = []DayKey{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayLabels = map[DayKey]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (d DayKey) Label() string {
	if l, ok := dayLabels[d]; ok {
		return l
	}
	return string(d)
}

func (d DayKey) Valid() bool {
	_, ok := dayLabels[d]
	return ok
}

// DayOf returns the key for t's weekday in t's location.
func DayOf(t time.Time) DayKey {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WeekKey identifies an ISO week, e.g. "2026-W42".
type WeekKey string

func WeekOf(t time.Time) WeekKey {
	y, w := t.ISOWeek()
	return WeekKey(fmt.Sprintf("%04d-W%02d", y, w))
}

// Schedule maps a weekday to free text (rooms, hours, lesson names).
type Schedule map[DayKey]string

// WeeklyPlan maps any day to free text.
type WeeklyPlan map[DayKey]string

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TaskBook buckets tasks by ISO week, then by day.
type TaskBook map[WeekKey]map[DayKey][]Task

// Clone deep-copies the book.
func (b TaskBook) Clone() TaskBook {
	out := make(TaskBook, len(b))
	for wk, days := range b {
		cp := make(map[DayKey][]Task, len(days))
		for d, tasks := range days {
			cp[d] = append([]Task(nil), tasks...)
		}
		out[wk] = cp
	}
	return out
}
