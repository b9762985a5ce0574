package tracker

import (
	"fmt"
	"strings"

	"github.com/sadopc/studytrack/internal/model"
	"github.com/sadopc/studytrack/internal/store"
)

func (t *Tracker) Profile() model.Profile { return t.profile }

// HasProfile reports whether the welcome form has been completed.
func (t *Tracker) HasProfile() bool { return t.profile.Name != "" }

// SaveProfile updates the text fields and keeps the current photo.
func (t *Tracker) SaveProfile(in ProfileInput) (model.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := t.check(in); err != nil {
		return model.Profile{}, err
	}
	p := model.Profile{
		Name:       in.Name,
		School:     strings.TrimSpace(in.School),
		Department: strings.TrimSpace(in.Department),
		Grade:      strings.TrimSpace(in.Grade),
		Photo:      t.profile.Photo,
	}
	if err := t.saveProfile("save profile", p); err != nil {
		return model.Profile{}, err
	}
	t.profile = p
	return p, nil
}

// SetProfilePhoto stores a data URL; an empty string removes the photo.
func (t *Tracker) SetProfilePhoto(dataURL string) error {
	p := t.profile
	p.Photo = dataURL
	if err := t.saveProfile("set profile photo", p); err != nil {
		return err
	}
	t.profile = p
	return nil
}

func (t *Tracker) saveProfile(op string, p model.Profile) error {
	blob, err := encode(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return t.commit(op, map[string][]byte{store.KeyProfile: blob})
}
