package cmd

import (
	"strings"
	"testing"
)

func TestThemeCommand(t *testing.T) {
	setupEnv(t)

	steps := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{args: []string{"theme"}, want: "light"},
		{args: []string{"theme", "dark"}, want: "dark"},
		{args: []string{"theme"}, want: "dark"},
		{args: []string{"theme", "dark"}, want: "dark"},
		{args: []string{"theme", "toggle"}, want: "light"},
		{args: []string{"theme", "purple"}, wantErr: true},
		{args: []string{"theme"}, want: "light"},
	}

	for _, step := range steps {
		out, err := executeCommand(t, step.args...)
		if (err != nil) != step.wantErr {
			t.Fatalf("%v error = %v, wantErr %v", step.args, err, step.wantErr)
		}
		if step.wantErr {
			continue
		}
		if got := strings.TrimSpace(out); got != step.want {
			t.Errorf("%v output = %q, want %q", step.args, got, step.want)
		}
	}
}
