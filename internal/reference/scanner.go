package reference

// Token is one identifier occurrence inside a command string.
// Start and End are byte offsets of the whole match, prefix included.
type Token struct {
	Raw   string
	ID    string
	Form  Form
	Start int
	End   int
}

// Scan returns every identifier token in text, in order of appearance.
func Scan(text string) []Token {
	if text == "" {
		return nil
	}
	matches := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tok := Token{
			Raw:   text[m[0]:m[1]],
			Start: m[0],
			End:   m[1],
			Form:  FormOrdinal,
		}
		idStart := m[0]
		if m[2] >= 0 {
			tok.Form = FormFull
			idStart = m[3]
		}
		tok.ID = text[idStart:m[1]]
		tokens = append(tokens, tok)
	}
	return tokens
}

// Contains reports whether text holds at least one identifier token.
func Contains(text string) bool {
	return tokenPattern.MatchString(text)
}

// Rewrite replaces each token in text with the string returned by replace.
// When replace reports false the token is left untouched. The returned slice
// lists the tokens that were not replaced.
func Rewrite(text string, replace func(Token) (string, bool)) (string, []Token) {
	tokens := Scan(text)
	if len(tokens) == 0 {
		return text, nil
	}
	out := make([]byte, 0, len(text))
	var missed []Token
	last := 0
	for _, tok := range tokens {
		out = append(out, text[last:tok.Start]...)
		if value, ok := replace(tok); ok {
			out = append(out, value...)
		} else {
			out = append(out, tok.Raw...)
			missed = append(missed, tok)
		}
		last = tok.End
	}
	out = append(out, text[last:]...)
	return string(out), missed
}
