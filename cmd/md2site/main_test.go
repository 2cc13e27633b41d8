package main

// Notes:
// - runMain: we test dispatch and exit codes for every command. Build, render
//   and new have their own files with end-to-end cases.
// - wantsVerbose: we test the pre-parse scan used for the automaxprocs logger.
// These are acceptable gaps: main() itself is not tested (calls os.Exit).

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"md2site"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: md2site"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"md2site", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"md2site dev"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"md2site", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site", "Commands:", "build", "render", "new"},
		},
		{
			name:         "help build shows build help",
			args:         []string{"md2site", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site build", "--base-path", "--strict"},
		},
		{
			name:         "help render shows render help",
			args:         []string{"md2site", "help", "render"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site render", "--json"},
		},
		{
			name:         "help new shows new help",
			args:         []string{"md2site", "help", "new"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site new", "--tags"},
		},
		{
			name:         "help for unknown command exits with ExitUsage",
			args:         []string{"md2site", "help", "deploy"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: deploy"},
		},
		{
			name:         "build --help prints build usage to stdout",
			args:         []string{"md2site", "build", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2site build"},
		},
		{
			name:         "completion bash prints script",
			args:         []string{"md2site", "completion", "bash"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"_md2site_completions", "complete -o filenames -F"},
		},
		{
			name:         "completion with unknown shell exits with ExitUsage",
			args:         []string{"md2site", "completion", "tcsh"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported shell"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"md2site", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown", "Usage: md2site"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"md2site", "build", "--nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag: --nope", "Usage: md2site build"},
		},
		{
			name:         "build rejects positional arguments",
			args:         []string{"md2site", "build", "posts"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"build takes no arguments"},
		},
		{
			name:         "render without file exits with ExitUsage",
			args:         []string{"md2site", "render"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"render takes exactly one file"},
		},
		{
			name:         "new without title exits with ExitUsage",
			args:         []string{"md2site", "new"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"new requires a title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)

			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWantsVerbose - Pre-parse verbose detection
// ---------------------------------------------------------------------------

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", nil, false},
		{"short flag", []string{"build", "-v"}, true},
		{"long flag", []string{"build", "--verbose"}, true},
		{"other flags only", []string{"build", "-q", "--drafts"}, false},
		{"after terminator", []string{"render", "--", "-v"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := wantsVerbose(tt.args); got != tt.want {
				t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
