package dvdxml

import "strings"

var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML reserved characters with named entities.
func Escape(text string) string {
	return entityReplacer.Replace(text)
}

// escapeComment makes text safe inside <!-- -->.
func escapeComment(text string) string {
	text = Escape(strings.TrimSpace(text))
	for strings.Contains(text, "--") {
		text = strings.ReplaceAll(text, "--", "- -")
	}
	return text
}
