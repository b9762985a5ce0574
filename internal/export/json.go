package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/tracker"
)

type jsonExport struct {
	ExportedAt    string             `json:"exported_at"`
	Summary       jsonSummary        `json:"summary"`
	Lessons       json.RawMessage    `json:"lessons"`
	Notes         []model.Note       `json:"notes"`
	Trash         []model.TrashEntry `json:"trash"`
	Schedule      model.Schedule     `json:"schedule"`
	ScheduleImage string             `json:"scheduleImage,omitempty"`
	WeeklyPlan    model.WeeklyPlan   `json:"weeklyPlan"`
	Tasks         model.TaskBook     `json:"tasks"`
	Profile       model.Profile      `json:"profile"`
}

type jsonSummary struct {
	Lessons      int     `json:"lessons"`
	Units        int     `json:"units"`
	TotalAbsence int     `json:"total_absence_hours"`
	TotalMax     int     `json:"total_allowed_hours"`
	Critical     int     `json:"critical"`
	AverageUsage float64 `json:"average_usage_percent"`
}

// ToJSON writes a backup of every collection. Lessons and trash use the same
// encoding as the store, so each section can be pasted back as a blob.
func ToJSON(snap tracker.Snapshot, path string) error {
	lessons, err := model.MarshalLessons(snap.Lessons)
	if err != nil {
		return fmt.Errorf("marshal lessons: %w", err)
	}

	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Summary: jsonSummary{
			Lessons:      len(snap.Lessons),
			Units:        snap.Stats.Units,
			TotalAbsence: snap.Stats.TotalAbsence,
			TotalMax:     snap.Stats.TotalMax,
			Critical:     snap.Stats.Critical,
			AverageUsage: snap.Stats.AverageUsage(),
		},
		Lessons:       lessons,
		Notes:         orEmpty(snap.Notes),
		Trash:         orEmpty(snap.Trash),
		Schedule:      snap.Schedule,
		ScheduleImage: snap.ScheduleImage,
		WeeklyPlan:    snap.WeeklyPlan,
		Tasks:         snap.Tasks,
		Profile:       snap.Profile,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
