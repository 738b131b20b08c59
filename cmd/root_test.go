package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/iksnae/thread-digest/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag of cmd and its children back to its default so
// one Execute does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// setupEnv isolates the data directory and clears overrides from the
// environment.
func setupEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"THREAD_DIGEST_SERVER", "THREAD_DIGEST_STORE", "REDIS_URL"} {
		t.Setenv(key, "")
	}
	return testutil.SetHome(t)
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, strings.NewReader(""), args...)
}

func executeCommandWithInput(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(in)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{
			name: "version flag",
			args: []string{"--version"},
			want: "dev (commit: unknown, built: unknown)",
		},
		{
			name: "help flag",
			args: []string{"--help"},
			want: "thread-digest",
		},
		{
			name:    "unknown command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			out, err := executeCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != "" && !strings.Contains(out, tt.want) {
				t.Errorf("rootCmd.Execute() output = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"topic", "hn", "url", "text", "history", "theme", "trending", "last", "export", "tui", "serve", "healthcheck"}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered on root", name)
		}
	}
}

func TestRootCommand_VerboseFlag(t *testing.T) {
	setupEnv(t)
	fs := testutil.NewFakeServer(t)

	_, err := executeCommand(t, "--verbose", "--server", fs.URL, "trending")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !verbose {
		t.Error("verbose = false, want true after --verbose")
	}
	resetFlags(rootCmd)
}
