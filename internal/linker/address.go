package linker

import (
	"strconv"

	"discauthor/internal/reference"
)

// Domain distinguishes the VMGM menu domain from titleset domains.
type Domain int

const (
	DomainVMGM Domain = iota
	DomainTitleset
)

func (d Domain) String() string {
	if d == DomainVMGM {
		return "vmgm"
	}
	return "titleset"
}

// Address is the ordinal location of a node as dvdauthor numbers it.
// Titleset is 1-based and zero inside the VMGM. Ordinal is the 1-based
// position of a menu or title inside its container and zero for containers.
type Address struct {
	Domain   Domain
	Titleset int
	Kind     reference.Kind
	Ordinal  int
}

// Full renders the address as a complete jump target.
func (a Address) Full() string {
	switch a.Kind {
	case reference.KindVMGM:
		return "vmgm menu"
	case reference.KindTitleset:
		return "titleset " + strconv.Itoa(a.Titleset) + " menu"
	}
	n := strconv.Itoa(a.Ordinal)
	if a.Domain == DomainVMGM {
		return "vmgm " + string(a.Kind) + " " + n
	}
	return "titleset " + strconv.Itoa(a.Titleset) + " " + string(a.Kind) + " " + n
}

// Short renders the bare ordinal used when composing commands by hand.
func (a Address) Short() string {
	switch a.Kind {
	case reference.KindVMGM:
		return "vmgm"
	case reference.KindTitleset:
		return strconv.Itoa(a.Titleset)
	default:
		return strconv.Itoa(a.Ordinal)
	}
}

// Render picks the rendering for a token form.
func (a Address) Render(form reference.Form) string {
	if form == reference.FormFull {
		return a.Full()
	}
	return a.Short()
}

// Location describes where the node sits, e.g. "titleset 2" or
// "vmgm menu 1". Containers are named without a jump keyword.
func (a Address) Location() string {
	switch a.Kind {
	case reference.KindVMGM:
		return "vmgm"
	case reference.KindTitleset:
		return "titleset " + strconv.Itoa(a.Titleset)
	default:
		return a.Full()
	}
}

func (a Address) String() string { return a.Location() }
