package internal

import (
	"strings"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<b>hi</b>", "&lt;b&gt;hi&lt;/b&gt;"},
		{"plain text", "plain text"},
		{"", ""},
		{"a & b \"quoted\" 'single'", "a & b \"quoted\" 'single'"},
		{"<<>>", "&lt;&lt;&gt;&gt;"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := EscapeHTML(tt.input); got != tt.want {
				t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeHTML_NoLiteralTags(t *testing.T) {
	got := EscapeHTML("Use <b>gofmt</b> and <i>vet</i>")
	if strings.ContainsAny(got, "<>") {
		t.Errorf("EscapeHTML() left a tag character in %q", got)
	}
}
