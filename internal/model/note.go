package model

// NoteColor is the accent stripe shown on a note.
type NoteColor string

const (
	NotePink   NoteColor = "pink"
	NoteAccent NoteColor = "accent"
)

// NoteDateLayout is the day format stamped on new notes.
const NoteDateLayout = "02.01.2006"

type Note struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Color   NoteColor `json:"color"`
	Date    string    `json:"date"`
}
