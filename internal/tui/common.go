package tui

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/media"
	"github.com/sadopc/studytrack/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewLessons
	viewNotes
	viewPlanner
	viewTrash
	viewProfile
	viewSettings
)

var viewNames = []string{"Dashboard", "Lessons", "Notes", "Planner", "Trash", "Profile", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// changedMsg is sent after a mutation so views that cache derived data
// (the dashboard chart) can rebuild.
type changedMsg struct{}

type imageTarget int

const (
	targetSchedule imageTarget = iota
	targetPhoto
)

// imageLoadedMsg carries an image read off the UI goroutine; the mutation
// happens when the message reaches Update.
type imageLoadedMsg struct {
	target  imageTarget
	dataURL string
	err     error
}

func loadImage(path string, maxSide int, target imageTarget) tea.Cmd {
	return func() tea.Msg {
		dataURL, err := media.EncodeFile(expandHome(strings.TrimSpace(path)), maxSide)
		return imageLoadedMsg{target: target, dataURL: dataURL, err: err}
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// --- Helpers ---

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func changed(text string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return changedMsg{} },
		status(text),
	)
}

// reportErr turns a tracker error into a status line. Stale references are
// dropped silently; validation and storage problems are shown.
func reportErr(err error) tea.Cmd {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tracker.ErrNotFound), errors.Is(err, tracker.ErrIndexOutOfRange):
		return nil
	case errors.Is(err, tracker.ErrValidation):
		return func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
	case errors.Is(err, tracker.ErrPersistence):
		return func() tea.Msg { return statusMsg{text: "Not saved: " + err.Error(), isError: true} }
	default:
		return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true} }
	}
}

// formatUsage renders a counter as "3/6h  50%", or "3/0h  -" without an
// allowance.
func formatUsage(c absence.Counter) string {
	ratio, ok := absence.UsageRatio(c)
	if !ok {
		return fmt.Sprintf("%d/%dh  -", c.Current, c.Max)
	}
	return fmt.Sprintf("%d/%dh  %.0f%%", c.Current, c.Max, ratio*100)
}

// usageBar draws a fixed-width bar filled by the usage ratio.
func usageBar(c absence.Counter, width int) string {
	ratio, ok := absence.UsageRatio(c)
	if !ok || width <= 0 {
		return mutedStyle.Render(strings.Repeat("·", max(width, 0)))
	}
	filled := int(ratio*float64(width) + 0.5)
	filled = min(filled, width)
	return strings.Repeat("█", filled) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func validInt(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// optionalInt is validInt that also accepts an empty field.
func optionalInt(lo, hi int) func(string) error {
	check := validInt(lo, hi)
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return check(s)
	}
}

func validRatio(s string) error {
	f, err := parsePercent(s)
	if err != nil {
		return err
	}
	if f <= 0 || f > 1 {
		return errors.New("must be between 1 and 100")
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// parsePercent reads "80" or "80%" as 0.80.
func parsePercent(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("enter a percentage")
	}
	return f / 100, nil
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(math.Round(f*10000)/100, 'f', -1, 64)
}
