package internal

import "strings"

var htmlTagReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// EscapeHTML replaces '<' and '>' with their entities and nothing else.
// Summary text, UI summary and post title/body go through it before they are
// written into markup. It does not neutralize attribute-based injection.
func EscapeHTML(s string) string {
	return htmlTagReplacer.Replace(s)
}
