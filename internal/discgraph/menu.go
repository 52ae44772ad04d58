package discgraph

import (
	"fmt"
	"strings"

	"discauthor/internal/reference"
)

// Entry names the navigation context allowed to jump into a menu.
type Entry string

const (
	EntryTitle    Entry = "title"
	EntryRoot     Entry = "root"
	EntrySubtitle Entry = "subtitle"
	EntryAudio    Entry = "audio"
	EntryAngle    Entry = "angle"
	EntryPTT      Entry = "ptt"
)

// ParseEntry validates an entry point name.
func ParseEntry(value string) (Entry, error) {
	entry := Entry(strings.ToLower(strings.TrimSpace(value)))
	switch entry {
	case EntryTitle, EntryRoot, EntrySubtitle, EntryAudio, EntryAngle, EntryPTT:
		return entry, nil
	default:
		return "", fmt.Errorf("unknown menu entry point %q", value)
	}
}

// Button is one selectable button. Name is empty for anonymous buttons.
type Button struct {
	Name     string
	Commands string
}

// Menu is a title that also exposes buttons.
type Menu struct {
	Title
	entry   Entry
	buttons []Button
}

// NewMenu creates a menu with the given entry point. The entry is checked
// when the menu is attached to a VMGM or titleset.
func NewMenu(name string, entry Entry) *Menu {
	return &Menu{
		Title: Title{id: issue(reference.KindMenu), name: name},
		entry: entry,
	}
}

// Entry returns the menu's entry point.
func (m *Menu) Entry() Entry { return m.entry }

// SetButtonCommands sets the commands of a button. With an empty name a new
// anonymous button is appended. With a name, the first button carrying that
// name is overwritten in place; if none exists a named button is appended.
func (m *Menu) SetButtonCommands(commands, name string) {
	if name != "" {
		for i := range m.buttons {
			if m.buttons[i].Name == name {
				m.buttons[i].Commands = commands
				return
			}
		}
	}
	m.buttons = append(m.buttons, Button{Name: name, Commands: commands})
}

// Buttons returns the buttons in order.
func (m *Menu) Buttons() []Button {
	return append([]Button(nil), m.buttons...)
}
