package sanitization

import (
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SingleLine collapses every whitespace run, newlines included, into one
// space. Used for values that end up in mail headers.
func SingleLine(input string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(input, " "))
}

// MultilineHTML escapes input and converts its line breaks to <br>
func MultilineHTML(input string) template.HTML {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	escaped := template.HTMLEscapeString(normalized)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// Preview shortens input to at most max runes on a single line, for logs
func Preview(input string, max int) string {
	line := SingleLine(input)
	if utf8.RuneCountInString(line) <= max {
		return line
	}
	runes := []rune(line)
	return string(runes[:max]) + "…"
}
