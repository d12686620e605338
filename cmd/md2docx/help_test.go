package main

// Notes:
// - runHelp: each command prints its own usage; unknown names go to
//   stderr with the main usage.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{name: "no command", args: nil, wantStdout: "Usage: md2docx <command>"},
		{name: "convert", args: []string{"convert"}, wantStdout: "--spacing-scale"},
		{name: "markdown", args: []string{"markdown"}, wantStdout: "Usage: md2docx markdown"},
		{name: "theme", args: []string{"theme"}, wantStdout: "Usage: md2docx theme"},
		{name: "completion", args: []string{"completion"}, wantStdout: "Supported shells:"},
		{name: "version", args: []string{"version"}, wantStdout: "Usage: md2docx version"},
		{name: "help", args: []string{"help"}, wantStdout: "Usage: md2docx help"},
		{name: "unknown", args: []string{"render"}, wantStderr: "Unknown command: render"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			runHelp(tt.args, env.Environment)

			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q, got %q", tt.wantStdout, env.stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q, got %q", tt.wantStderr, env.stderr.String())
			}
		})
	}
}

func TestPrintConvertUsage_ListsEveryFlag(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	printConvertUsage(&b)
	usage := b.String()

	fs := buildConvertFlagSet(&convertFlags{})
	for _, f := range extractFlagsFromFlagSet(fs) {
		if !strings.Contains(usage, "--"+f.Long) {
			t.Errorf("convert usage does not document --%s", f.Long)
		}
	}
}
