package reference

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel prefixes every identifier. It is not valid dvdauthor command syntax.
const Sentinel = "ID:"

// FullPrefix marks a token that should resolve to a complete jump target.
const FullPrefix = "f:"

// Kind names the node family encoded in an identifier.
type Kind string

const (
	KindDisc     Kind = "disc"
	KindVMGM     Kind = "vmgm"
	KindTitleset Kind = "titleset"
	KindMenu     Kind = "menu"
	KindTitle    Kind = "title"
)

// Valid reports whether k is one of the known node kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDisc, KindVMGM, KindTitleset, KindMenu, KindTitle:
		return true
	default:
		return false
	}
}

// Form selects how a token is rewritten.
type Form int

const (
	// FormOrdinal rewrites to the bare ordinal of the referenced node.
	FormOrdinal Form = iota
	// FormFull rewrites to a complete jump target such as "titleset 2 title 1".
	FormFull
)

func (f Form) String() string {
	if f == FormFull {
		return "full"
	}
	return "ordinal"
}

var tokenPattern = regexp.MustCompile(`(f:)?ID:(disc|vmgm|titleset|menu|title):([0-9]+)`)

// Format renders the canonical identifier string for a kind and sequence number.
func Format(kind Kind, seq uint64) string {
	return Sentinel + string(kind) + ":" + strconv.FormatUint(seq, 10)
}

// Parse splits an identifier string into its kind and sequence number.
func Parse(id string) (Kind, uint64, error) {
	rest, ok := strings.CutPrefix(id, Sentinel)
	if !ok {
		return "", 0, fmt.Errorf("identifier %q: missing %s prefix", id, Sentinel)
	}
	kindText, seqText, ok := strings.Cut(rest, ":")
	if !ok {
		return "", 0, fmt.Errorf("identifier %q: missing sequence", id)
	}
	kind := Kind(kindText)
	if !kind.Valid() {
		return "", 0, fmt.Errorf("identifier %q: unknown kind %q", id, kindText)
	}
	seq, err := strconv.ParseUint(seqText, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("identifier %q: %w", id, err)
	}
	return kind, seq, nil
}
