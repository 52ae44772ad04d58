package discgraph

import "discauthor/internal/reference"

// Disc is the root of the graph.
type Disc struct {
	id        ID
	name      string
	jumppad   bool
	vmgm      *VMGM
	titlesets []*Titleset
}

// NewDisc creates an empty disc. The name only appears as a comment in the
// emitted document.
func NewDisc(name string) *Disc {
	return &Disc{id: issue(reference.KindDisc), name: name}
}

func (d *Disc) ID() ID               { return d.id }
func (d *Disc) Kind() reference.Kind { return reference.KindDisc }
func (d *Disc) Name() string         { return d.name }

// AddTitleset appends ts. Titlesets are numbered in the order they are added.
func (d *Disc) AddTitleset(ts *Titleset) {
	if ts == nil {
		return
	}
	d.titlesets = append(d.titlesets, ts)
}

// SetVMGM sets the disc's single VMGM domain, replacing any previous one.
// Passing nil removes it.
func (d *Disc) SetVMGM(v *VMGM) {
	d.vmgm = v
}

// VMGM returns the VMGM domain or nil.
func (d *Disc) VMGM() *VMGM { return d.vmgm }

// Titlesets returns the titlesets in declaration order.
func (d *Disc) Titlesets() []*Titleset {
	return append([]*Titleset(nil), d.titlesets...)
}

// SetJumppad toggles dvdauthor's jumppad option. Disabled by default.
func (d *Disc) SetJumppad(enabled bool) { d.jumppad = enabled }

// Jumppad reports whether jumppad is enabled.
func (d *Disc) Jumppad() bool { return d.jumppad }
