package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/model"
)

// ToCSV writes one row per counted unit: simple lessons and each part of a
// composite lesson.
func ToCSV(units []model.Unit, th absence.Thresholds, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Lesson", "Part", "Current", "Max", "Remaining", "Usage %", "Status"}); err != nil {
		return err
	}

	for _, u := range units {
		row := []string{
			u.LessonName,
			u.SubName,
			fmt.Sprintf("%d", u.Counter.Current),
			fmt.Sprintf("%d", u.Counter.Max),
			fmt.Sprintf("%d", absence.Remaining(u.Counter)),
			formatUsage(u.Counter),
			th.Classify(u.Counter).String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// formatUsage renders the usage ratio as a percentage, or "-" when the unit
// has no allowance.
func formatUsage(c absence.Counter) string {
	ratio, ok := absence.UsageRatio(c)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.0f", ratio*100)
}
