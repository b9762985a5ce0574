package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/media"
	"github.com/sadopc/studytrack/internal/tracker"
)

type profileModel struct {
	tracker *tracker.Tracker
	maxSide int
	width   int
	height  int

	formActive bool
	form       *huh.Form
	welcome    bool
	photoForm  bool

	formName       *string
	formSchool     *string
	formDepartment *string
	formGrade      *string
	formPath       *string
}

func newProfileModel(tr *tracker.Tracker, photoMaxSide int) profileModel {
	return profileModel{
		tracker:        tr,
		maxSide:        photoMaxSide,
		formName:       new(string),
		formSchool:     new(string),
		formDepartment: new(string),
		formGrade:      new(string),
		formPath:       new(string),
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case imageLoadedMsg:
		if msg.target != targetPhoto {
			return p, nil
		}
		if msg.err != nil {
			return p, reportErr(msg.err)
		}
		if err := p.tracker.SetProfilePhoto(msg.dataURL); err != nil {
			return p, reportErr(err)
		}
		return p, status("Photo saved")

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Edit):
			return p.showForm(false)
		case key.Matches(msg, keys.Image):
			return p.showPhotoForm()
		case key.Matches(msg, keys.Clear):
			if p.tracker.Profile().Photo == "" {
				return p, nil
			}
			if err := p.tracker.SetProfilePhoto(""); err != nil {
				return p, reportErr(err)
			}
			return p, status("Photo removed")
		}
	}
	return p, nil
}

// showForm opens the profile editor. The welcome variant is shown on first
// start and cannot be dismissed with esc.
func (p profileModel) showForm(welcome bool) (profileModel, tea.Cmd) {
	cur := p.tracker.Profile()
	*p.formName = cur.Name
	*p.formSchool = cur.School
	*p.formDepartment = cur.Department
	*p.formGrade = cur.Grade

	group := huh.NewGroup(
		huh.NewInput().Title("Name").Value(p.formName).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}),
		huh.NewInput().Title("School").Value(p.formSchool),
		huh.NewInput().Title("Department").Value(p.formDepartment),
		huh.NewInput().Title("Grade").Value(p.formGrade),
	)
	if welcome {
		group = group.Title("Welcome to studytrack").
			Description("Tell us who you are. You can change this later on the Profile tab.")
	}

	p.form = huh.NewForm(group).WithShowHelp(true).WithShowErrors(true)
	p.welcome = welcome
	p.photoForm = false
	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) showPhotoForm() (profileModel, tea.Cmd) {
	*p.formPath = ""
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Photo path").
				Description("PNG, JPEG, GIF, BMP or TIFF; it is scaled down before saving").
				Value(p.formPath),
		),
	).WithShowHelp(true)
	p.photoForm = true
	p.welcome = false
	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" && !p.welcome {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	p.formActive = false
	if p.photoForm {
		if strings.TrimSpace(*p.formPath) == "" {
			return p, nil
		}
		return p, tea.Batch(status("Loading photo..."), loadImage(*p.formPath, p.maxSide, targetPhoto))
	}

	saved, err := p.tracker.SaveProfile(tracker.ProfileInput{
		Name:       *p.formName,
		School:     *p.formSchool,
		Department: *p.formDepartment,
		Grade:      *p.formGrade,
	})
	if err != nil {
		return p, reportErr(err)
	}
	p.welcome = false
	return p, changed("Profile saved for " + saved.Name)
}

func (p profileModel) view() string {
	w := p.width - 4
	if p.formActive && p.form != nil {
		title := "Edit Profile"
		if p.photoForm {
			title = "Profile Photo"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", p.form.View()),
		)
	}

	prof := p.tracker.Profile()
	initials := prof.Initials()
	if initials == "" {
		initials = "?"
	}

	photo := mutedStyle.Render("No photo")
	if prof.Photo != "" {
		photo = secondaryStyle.Render("Photo: " + media.Describe(prof.Photo))
	}

	name := prof.Name
	if name == "" {
		name = "Unnamed student"
	}
	card := lipgloss.JoinHorizontal(lipgloss.Top,
		avatarStyle.Render(initials),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(name),
			subtitleStyle.Render(prof.Affiliation()),
			photo,
		),
	)

	stats := p.tracker.Stats()
	summary := []string{
		fmt.Sprintf("  %-20s %s", "Lessons", highlightStyle.Render(fmt.Sprintf("%d", len(p.tracker.Lessons())))),
		fmt.Sprintf("  %-20s %s", "Tracked units", highlightStyle.Render(fmt.Sprintf("%d", stats.Units))),
		fmt.Sprintf("  %-20s %s", "Absence used", highlightStyle.Render(fmt.Sprintf("%d of %dh", stats.TotalAbsence, stats.TotalMax))),
		fmt.Sprintf("  %-20s %s", "Average usage", highlightStyle.Render(fmt.Sprintf("%.0f%%", stats.AverageUsage()))),
		fmt.Sprintf("  %-20s %s", "Notes", highlightStyle.Render(fmt.Sprintf("%d", len(p.tracker.Notes())))),
		fmt.Sprintf("  %-20s %s", "In trash", highlightStyle.Render(fmt.Sprintf("%d", len(p.tracker.Trash())))),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Profile"),
		"",
		card,
		"",
		strings.Join(summary, "\n"),
		"",
		mutedStyle.Render("  enter: edit  i: photo  x: remove photo"),
	))
}
