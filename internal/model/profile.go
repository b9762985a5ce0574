package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Profile struct {
	Name       string `json:"name"`
	School     string `json:"school"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
	Photo      string `json:"photo,omitempty"` // data URL
}

// Initials returns up to two upper-case initials, one per word of the name.
func (p Profile) Initials() string {
	var b strings.Builder
	for _, w := range strings.Fields(p.Name) {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return b.String()
}

// Affiliation joins school, department and grade: "School - Dept (Grade)".
func (p Profile) Affiliation() string {
	s := p.School
	if p.Department != "" {
		s += " - " + p.Department
	}
	if p.Grade != "" {
		s += " (" + p.Grade + ")"
	}
	return s
}
