package language

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

// ErrUnknownLanguage reports a code outside the ISO 639-1 table.
var ErrUnknownLanguage = errors.New("unknown language code")

// Code is a verified ISO 639-1 language.
type Code struct {
	ISO2 string // lowercase two-letter code written into the descriptor
	Name string // English display name
}

func (c Code) String() string { return c.ISO2 }

var titleCaser = cases.Title(xlanguage.Und)

// Verify normalizes code and checks it against the ISO 639-1 table.
func Verify(code string) (Code, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return Code{}, fmt.Errorf("%w: empty code", ErrUnknownLanguage)
	}
	if name, ok := iso639[trimmed]; ok {
		return Code{ISO2: trimmed, Name: displayName(name)}, nil
	}
	tag, err := xlanguage.Parse(trimmed)
	if err != nil {
		return Code{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	base, _ := tag.Base()
	iso2 := base.String()
	name, ok := iso639[iso2]
	if !ok {
		return Code{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return Code{ISO2: iso2, Name: displayName(name)}, nil
}

// ToISO2 returns the two-letter code for any accepted input, or "" when the
// input is not recognized.
func ToISO2(code string) string {
	verified, err := Verify(code)
	if err != nil {
		return ""
	}
	return verified.ISO2
}

// DisplayName returns a human-readable name for code, or the uppercased input
// when the code is unknown.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	verified, err := Verify(code)
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	return verified.Name
}

func displayName(raw string) string {
	primary, _, _ := strings.Cut(raw, ";")
	return titleCaser.String(strings.ToLower(primary))
}
