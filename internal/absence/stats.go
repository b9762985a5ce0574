package absence

// Stats is the dashboard aggregate over every counted unit.
type Stats struct {
	Units        int
	TotalAbsence int
	TotalMax     int
	Critical     int
}

// Fold aggregates units. Callers expand composite lessons into their parts
// before folding so each part counts once and the parent not at all.
func (t Thresholds) Fold(units []Counter) Stats {
	var s Stats
	for _, c := range units {
		s.Units++
		s.TotalAbsence += c.Current
		s.TotalMax += c.Max
		if t.IsCritical(c) {
			s.Critical++
		}
	}
	return s
}

// AverageUsage returns TotalAbsence/TotalMax as a percentage, or 0 when no
// allowance exists.
func (s Stats) AverageUsage() float64 {
	if s.TotalMax <= 0 {
		return 0
	}
	return float64(s.TotalAbsence) / float64(s.TotalMax) * 100
}
