package linker

import (
	"errors"
	"fmt"
	"strings"

	"discauthor/internal/discgraph"
)

var (
	// ErrContentMissing marks an attached title or menu without video files.
	ErrContentMissing = errors.New("content missing")
	// ErrUnresolvedReference marks a command token naming no attached node.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrDuplicateIdentifier marks two attachments sharing one identifier.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// FaultKind classifies a deferred render fault.
type FaultKind int

const (
	FaultContentMissing FaultKind = iota
	FaultUnresolvedReference
)

func (k FaultKind) String() string {
	switch k {
	case FaultContentMissing:
		return "content missing"
	case FaultUnresolvedReference:
		return "unresolved reference"
	default:
		return "unknown"
	}
}

// Fault locates one deferred problem. Field and Token are set for
// unresolved references only.
type Fault struct {
	Kind    FaultKind
	Node    discgraph.ID
	Label   string
	Address Address
	Field   string
	Token   string
}

func (f Fault) String() string {
	switch f.Kind {
	case FaultUnresolvedReference:
		return fmt.Sprintf("%s: %s %s: token %q does not name an attached node", f.Kind, f.Label, f.Field, f.Token)
	default:
		return fmt.Sprintf("%s: %s at %s has no video files", f.Kind, f.Label, f.Address)
	}
}

// FaultError carries every fault found during one link attempt.
type FaultError struct {
	Faults []Fault
}

func (e *FaultError) Error() string {
	content, refs := e.counts()
	parts := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("render failed (%d content missing, %d unresolved references): %s",
		content, refs, strings.Join(parts, "; "))
}

// Is matches ErrContentMissing and ErrUnresolvedReference when a fault of
// that kind is present.
func (e *FaultError) Is(target error) bool {
	content, refs := e.counts()
	switch target {
	case ErrContentMissing:
		return content > 0
	case ErrUnresolvedReference:
		return refs > 0
	default:
		return false
	}
}

// ContentMissing returns the content faults.
func (e *FaultError) ContentMissing() []Fault { return e.filter(FaultContentMissing) }

// UnresolvedReferences returns the reference faults.
func (e *FaultError) UnresolvedReferences() []Fault { return e.filter(FaultUnresolvedReference) }

func (e *FaultError) filter(kind FaultKind) []Fault {
	var out []Fault
	for _, f := range e.Faults {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func (e *FaultError) counts() (content, refs int) {
	for _, f := range e.Faults {
		if f.Kind == FaultContentMissing {
			content++
		} else {
			refs++
		}
	}
	return content, refs
}

// DuplicateIdentifierError reports one identifier reached twice by the walk,
// typically because the same node was attached in two places. It is fatal and
// returned as soon as it is detected.
type DuplicateIdentifierError struct {
	ID     discgraph.ID
	First  Address
	Second Address
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("%s: %s attached at %s and %s", ErrDuplicateIdentifier, e.ID, e.First, e.Second)
}

// Is lets errors.Is match ErrDuplicateIdentifier.
func (e *DuplicateIdentifierError) Is(target error) bool {
	return target == ErrDuplicateIdentifier
}
