package discgraph

import (
	"fmt"

	"discauthor/internal/language"
	"discauthor/internal/reference"
)

var (
	vmgmEntries     = []Entry{EntryTitle}
	titlesetEntries = []Entry{EntryRoot, EntrySubtitle, EntryAudio, EntryAngle, EntryPTT}
)

// EntryPoint is what a container needs to know about a menu before attaching it.
type EntryPoint interface {
	ID() ID
	Entry() Entry
}

// menuDomain holds the menus shared by Titleset and VMGM.
type menuDomain struct {
	id      ID
	name    string
	menus   []*Menu
	allowed []Entry
}

func (c *menuDomain) ID() ID       { return c.id }
func (c *menuDomain) Name() string { return c.name }

// Menus returns the menus in declaration order.
func (c *menuDomain) Menus() []*Menu {
	return append([]*Menu(nil), c.menus...)
}

// AllowedEntries lists the entry points this container accepts.
func (c *menuDomain) AllowedEntries() []Entry {
	return append([]Entry(nil), c.allowed...)
}

func (c *menuDomain) addMenu(m *Menu) error {
	if m == nil {
		return &ConstraintViolation{Container: c.id, Reason: "menu is nil"}
	}
	if err := checkEntry(c.id, c.allowed, m); err != nil {
		return err
	}
	c.menus = append(c.menus, m)
	return nil
}

func checkEntry(container ID, allowed []Entry, ep EntryPoint) error {
	entry := ep.Entry()
	for _, candidate := range allowed {
		if entry == candidate {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, e := range allowed {
		names[i] = string(e)
	}
	return &ConstraintViolation{
		Container: container,
		Node:      ep.ID(),
		Field:     "entry",
		Value:     string(entry),
		Allowed:   names,
		Reason:    fmt.Sprintf("entry point not permitted in %s", container.Kind()),
	}
}

// Titleset is a container of menus and titles.
type Titleset struct {
	menuDomain
	titles     []*Title
	audioLangs []language.Code
}

// NewTitleset creates an empty titleset.
func NewTitleset(name string) *Titleset {
	return &Titleset{menuDomain: menuDomain{
		id:      issue(reference.KindTitleset),
		name:    name,
		allowed: titlesetEntries,
	}}
}

func (t *Titleset) Kind() reference.Kind { return reference.KindTitleset }

// AddMenu appends m. The menu's entry point must be one of root, subtitle,
// audio, angle or ptt; otherwise a *ConstraintViolation is returned and the
// titleset is left unchanged.
func (t *Titleset) AddMenu(m *Menu) error {
	return t.addMenu(m)
}

// AddTitle appends title. Titles are numbered in the order they are added.
func (t *Titleset) AddTitle(title *Title) {
	if title == nil {
		return
	}
	t.titles = append(t.titles, title)
}

// Titles returns the titles in declaration order.
func (t *Titleset) Titles() []*Title {
	return append([]*Title(nil), t.titles...)
}

// AddAudioLang declares the language of the next audio stream in the
// titleset's titles.
func (t *Titleset) AddAudioLang(code string) error {
	verified, err := language.Verify(code)
	if err != nil {
		return fmt.Errorf("titleset %s audio language: %w", t.id, err)
	}
	t.audioLangs = append(t.audioLangs, verified)
	return nil
}

// AudioLangs returns the declared audio languages in order.
func (t *Titleset) AudioLangs() []language.Code {
	return append([]language.Code(nil), t.audioLangs...)
}

// VMGM is the disc's top-level menu domain. It holds menus only.
type VMGM struct {
	menuDomain
	subpictureLangs []language.Code
}

// NewVMGM creates an empty VMGM domain.
func NewVMGM(name string) *VMGM {
	return &VMGM{menuDomain: menuDomain{
		id:      issue(reference.KindVMGM),
		name:    name,
		allowed: vmgmEntries,
	}}
}

func (v *VMGM) Kind() reference.Kind { return reference.KindVMGM }

// AddMenu appends m. The menu's entry point must be title; otherwise a
// *ConstraintViolation is returned and the VMGM is left unchanged.
func (v *VMGM) AddMenu(m *Menu) error {
	return v.addMenu(m)
}

// AddSubpictureLang declares the language of the next subpicture stream.
func (v *VMGM) AddSubpictureLang(code string) error {
	verified, err := language.Verify(code)
	if err != nil {
		return fmt.Errorf("vmgm %s subpicture language: %w", v.id, err)
	}
	v.subpictureLangs = append(v.subpictureLangs, verified)
	return nil
}

// SubpictureLangs returns the declared subpicture languages in order.
func (v *VMGM) SubpictureLangs() []language.Code {
	return append([]language.Code(nil), v.subpictureLangs...)
}
