package discgraph

import (
	"fmt"
	"strconv"
	"strings"

	"discauthor/internal/reference"
)

// Pause is a dvdauthor pause value: empty for none, "inf" to wait for the
// viewer, or a number of seconds between 1 and 254.
type Pause string

const (
	PauseNone     Pause = ""
	PauseInfinite Pause = "inf"
)

// PauseSeconds builds a timed pause.
func PauseSeconds(seconds int) (Pause, error) {
	if seconds < 1 || seconds > 254 {
		return PauseNone, fmt.Errorf("pause %d: must be between 1 and 254 seconds", seconds)
	}
	return Pause(strconv.Itoa(seconds)), nil
}

// ParsePause accepts "", "inf" or a second count.
func ParsePause(value string) (Pause, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return PauseNone, nil
	case string(PauseInfinite):
		return PauseInfinite, nil
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return PauseNone, fmt.Errorf("pause %q: expected \"inf\" or seconds", value)
	}
	return PauseSeconds(seconds)
}

// VideoFile is one MPEG program stream inside a title or menu.
type VideoFile struct {
	Path     string
	Chapters string
	Pause    Pause
}

// VideoOption configures an added video file.
type VideoOption func(*VideoFile)

// WithChapters sets the chapter marker list, e.g. "0,5:00,10:00".
func WithChapters(chapters string) VideoOption {
	return func(v *VideoFile) { v.Chapters = chapters }
}

// WithVideoPause sets the pause applied after the file plays.
func WithVideoPause(p Pause) VideoOption {
	return func(v *VideoFile) { v.Pause = p }
}

// Cell is a timed cell definition.
type Cell struct {
	Start   string
	End     string
	Chapter bool
	Program bool
	Pause   Pause
}

// CellOption configures an added cell.
type CellOption func(*Cell)

// AsChapter marks the cell as a chapter start.
func AsChapter() CellOption { return func(c *Cell) { c.Chapter = true } }

// AsProgram marks the cell as a program start.
func AsProgram() CellOption { return func(c *Cell) { c.Program = true } }

// WithCellPause sets the pause applied after the cell plays.
func WithCellPause(p Pause) CellOption {
	return func(c *Cell) { c.Pause = p }
}

// Title is a playable unit made of one or more video files.
type Title struct {
	id     ID
	name   string
	pause  Pause
	videos []VideoFile
	cells  []Cell
	pre    string
	post   string
}

// NewTitle creates an empty title.
func NewTitle(name string) *Title {
	return &Title{id: issue(reference.KindTitle), name: name}
}

func (t *Title) ID() ID               { return t.id }
func (t *Title) Kind() reference.Kind { return t.id.Kind() }
func (t *Title) Name() string         { return t.name }

// SetPause sets the pause applied after the whole program chain.
func (t *Title) SetPause(p Pause) { t.pause = p }

// Pause returns the program chain pause.
func (t *Title) Pause() Pause { return t.pause }

// AddVideoFile appends a video file.
func (t *Title) AddVideoFile(path string, opts ...VideoOption) {
	video := VideoFile{Path: path}
	for _, opt := range opts {
		opt(&video)
	}
	t.videos = append(t.videos, video)
}

// VideoFiles returns the video files in order.
func (t *Title) VideoFiles() []VideoFile {
	return append([]VideoFile(nil), t.videos...)
}

// AddCell appends a cell definition.
func (t *Title) AddCell(start, end string, opts ...CellOption) {
	cell := Cell{Start: start, End: end}
	for _, opt := range opts {
		opt(&cell)
	}
	t.cells = append(t.cells, cell)
}

// Cells returns the cell definitions in order.
func (t *Title) Cells() []Cell {
	return append([]Cell(nil), t.cells...)
}

// SetPreCommands sets the commands run before playback. Identifier tokens
// may reference any node of the disc.
func (t *Title) SetPreCommands(commands string) { t.pre = commands }

// SetPostCommands sets the commands run after playback.
func (t *Title) SetPostCommands(commands string) { t.post = commands }

func (t *Title) PreCommands() string  { return t.pre }
func (t *Title) PostCommands() string { return t.post }
