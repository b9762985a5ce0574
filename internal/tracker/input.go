package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SubLessonInput describes one part of a composite lesson. A nil AbsenceRate
// takes the tracker's DefaultSubRate; an explicit 0 allows no absence.
type SubLessonInput struct {
	Name        string
	TotalHours  int  `validate:"gte=0"`
	AbsenceRate *int `validate:"omitempty,gte=0,lte=100"`
}

// Rate returns a pointer to n for SubLessonInput.AbsenceRate.
func Rate(n int) *int { return &n }

// LessonInput describes a new lesson. A non-empty SubLessons makes it a
// composite lesson and TotalHours/AbsenceRate are ignored.
type LessonInput struct {
	Name        string           `validate:"required"`
	TotalHours  int              `validate:"gte=0"`
	AbsenceRate int              `validate:"gte=0,lte=100"`
	SubLessons  []SubLessonInput `validate:"dive"`
}

type NoteInput struct {
	Title   string `validate:"required"`
	Content string
	Color   string `validate:"omitempty,oneof=pink accent"`
}

type ProfileInput struct {
	Name       string `validate:"required"`
	School     string
	Department string
	Grade      string
}

type taskInput struct {
	Text string `validate:"required"`
	Day  string `validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
}

func (t *Tracker) check(v any) error {
	err := t.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
