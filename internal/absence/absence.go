// Package absence computes attendance allowances. Everything here is pure:
// functions take counters by value and return new values, leaving persistence
// to the caller.
package absence

// Counter is a pair of absence counters for a lesson or sub-lesson.
type Counter struct {
	Current int
	Max     int
}

// Status is the per-item visual classification.
type Status int

const (
	Safe Status = iota
	Warning
	Danger
)

func (s Status) String() string {
	switch s {
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "safe"
	}
}

// Thresholds holds the usage ratios at which a counter changes class.
// Critical is the coarser dashboard flag and is deliberately independent of
// Warning and Danger.
type Thresholds struct {
	Warning  float64
	Danger   float64
	Critical float64
}

// DefaultThresholds returns 0.70 / 0.90 for classification and 0.80 for
// the critical flag.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 0.70, Danger: 0.90, Critical: 0.80}
}

// MaxHours returns floor(total * rate / 100). Negative input counts as zero
// and rate is clamped to [0, 100].
func MaxHours(total, rate int) int {
	if total <= 0 || rate <= 0 {
		return 0
	}
	if rate > 100 {
		rate = 100
	}
	return total * rate / 100
}

// Remaining returns how many absence hours are still allowed.
func Remaining(c Counter) int {
	r := c.Max - c.Current
	if r < 0 {
		return 0
	}
	return r
}

// UsageRatio returns Current/Max. ok is false when Max is zero and the ratio
// is undefined.
func UsageRatio(c Counter) (ratio float64, ok bool) {
	if c.Max <= 0 {
		return 0, false
	}
	return float64(c.Current) / float64(c.Max), true
}

// Classify maps a counter to Safe, Warning or Danger. A counter without an
// allowance is Safe.
func (t Thresholds) Classify(c Counter) Status {
	ratio, ok := UsageRatio(c)
	if !ok {
		return Safe
	}
	switch {
	case ratio >= t.Danger:
		return Danger
	case ratio >= t.Warning:
		return Warning
	default:
		return Safe
	}
}

// IsCritical reports whether the usage ratio meets the critical threshold.
func (t Thresholds) IsCritical(c Counter) bool {
	ratio, ok := UsageRatio(c)
	return ok && ratio >= t.Critical
}

// Adjust returns c with Current moved by delta and clamped to [0, Max].
func Adjust(c Counter, delta int) Counter {
	next := c.Current + delta
	if next > c.Max {
		next = c.Max
	}
	if next < 0 {
		next = 0
	}
	c.Current = next
	return c
}
