package store

import (
	"fmt"
	"strconv"

	"github.com/sadopc/studytrack/internal/absence"
)

// Setting keys seeded by the migrations.
const (
	SettingWarning        = "warning_threshold"
	SettingDanger         = "danger_threshold"
	SettingCritical       = "critical_threshold"
	SettingDefaultSubRate = "default_sub_rate"
	SettingScheduleDays   = "schedule_days"
)

type Setting struct {
	Key   string
	Value string
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// GetFloat returns the setting parsed as a float, or fallback when the key is
// missing or unparsable.
func (s *Store) GetFloat(key string, fallback float64) float64 {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// GetInt is GetFloat for integers.
func (s *Store) GetInt(key string, fallback int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Thresholds reads the classification limits, falling back to the defaults
// for missing or unparsable values.
func (s *Store) Thresholds() absence.Thresholds {
	def := absence.DefaultThresholds()
	return absence.Thresholds{
		Warning:  s.GetFloat(SettingWarning, def.Warning),
		Danger:   s.GetFloat(SettingDanger, def.Danger),
		Critical: s.GetFloat(SettingCritical, def.Critical),
	}
}

// SetThresholds stores all three limits in one transaction.
func (s *Store) SetThresholds(th absence.Thresholds) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin set thresholds: %w", err)
	}
	defer tx.Rollback()

	for k, v := range map[string]float64{
		SettingWarning:  th.Warning,
		SettingDanger:   th.Danger,
		SettingCritical: th.Critical,
	} {
		_, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			k, strconv.FormatFloat(v, 'f', -1, 64),
		)
		if err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return tx.Commit()
}
