package main

import (
	"testing"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode cliMode
		msg  string
	}{
		{name: "run default", args: nil, mode: cliRun},
		{name: "version long", args: []string{"--version"}, mode: cliVersion},
		{name: "version short", args: []string{"-v"}, mode: cliVersion},
		{name: "version single-dash", args: []string{"-version"}, mode: cliVersion},
		{name: "help long", args: []string{"--help"}, mode: cliHelp},
		{name: "help short", args: []string{"-h"}, mode: cliHelp},
		{name: "help word", args: []string{"help"}, mode: cliHelp},
		{name: "invalid flag", args: []string{"--bogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus"},
		{name: "invalid flags", args: []string{"--bogus", "--pogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus --pogus"},
		{name: "too many args", args: []string{"--version", "extra"}, mode: cliVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mode, msg := parseCLIArgs(tc.args)
			if mode != tc.mode {
				t.Fatalf("mode mismatch: got %v want %v", mode, tc.mode)
			}
			if tc.msg != "" && msg != tc.msg {
				t.Fatalf("msg mismatch: got %q want %q", msg, tc.msg)
			}
		})
	}
}

func TestResolveVersionInfo(t *testing.T) {
	settings := map[string]string{
		"vcs.revision": "0123456789abcdef",
		"vcs.time":     "2026-08-30T12:00:00Z",
	}

	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.2.3", settings)
	if v != "v1.2.3" || c != "0123456789ab" || d != "2026-08-30T12:00:00Z" {
		t.Fatalf("got %q %q %q", v, c, d)
	}

	// Linker-set values win over build info.
	v, c, d = resolveVersionInfo("v2.0.0", "deadbeef", "2026-01-01", "v1.2.3", settings)
	if v != "v2.0.0" || c != "deadbeef" || d != "2026-01-01" {
		t.Fatalf("got %q %q %q", v, c, d)
	}

	// "(devel)" module version is not a release.
	v, _, _ = resolveVersionInfo("dev", "none", "unknown", "(devel)", nil)
	if v != "dev" {
		t.Fatalf("got %q", v)
	}
}
