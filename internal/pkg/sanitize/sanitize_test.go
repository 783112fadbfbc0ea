package sanitize

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestCommandStripsArtifacts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "ls -la", "ls -la"},
		{"whitespace", "  ls -la \n", "ls -la"},
		{"backticks", "`ls -la`", "ls -la"},
		{"double quotes", `"ls -la"`, "ls -la"},
		{"single quotes", "'ls -la'", "ls -la"},
		{"fence single line", "```ls -la```", "ls -la"},
		{"fence with language", "```bash\nls -la\n```", "ls -la"},
		{"fence bare", "```\nls -la\n```", "ls -la"},
		{"fence then backticks", "```\n`ls -la`\n```", "ls -la"},
		{"interior backticks kept", "echo `date`", "echo `date`"},
		{"interior quotes kept", `grep "foo bar" file.txt`, `grep "foo bar" file.txt`},
		{"unmatched quote kept", `"ls -la`, `"ls -la`},
		{"mismatched pair kept", `"ls -la'`, `"ls -la'`},
		{"empty", "", ""},
		{"only whitespace", "  \n\t ", ""},
		{"pipe preserved", "`du -sh * | sort -h`", "du -sh * | sort -h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Command(tt.in); got != tt.want {
				t.Errorf("Command(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCommandIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.String().Draw(t, "in")
		once := Command(in)
		twice := Command(once)
		if once != twice {
			t.Fatalf("not idempotent: Command(%q) = %q, Command again = %q", in, once, twice)
		}
	})
}

func TestCommandUnwrapsGeneratedWrappings(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// A clean command: non-empty, no wrapping markers at the edges.
		base := rapid.StringMatching(`[a-z][a-z0-9 ._/-]{0,40}[a-z0-9]`).Draw(t, "base")
		wrapper := rapid.SampledFrom([]string{
			"`%s`",
			`"%s"`,
			"'%s'",
			"```\n%s\n```",
			"```sh\n%s\n```",
			"  %s  ",
		}).Draw(t, "wrapper")

		wrapped := fmt.Sprintf(wrapper, base)
		if got := Command(wrapped); got != base {
			t.Fatalf("Command(%q) = %q, want %q", wrapped, got, base)
		}
	})
}
