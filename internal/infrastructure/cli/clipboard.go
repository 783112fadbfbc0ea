package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/jswirl/ollash/internal/ports"
)

// clipboardTools lists candidate commands per platform, tried in order.
var clipboardTools = map[string][][]string{
	"darwin": {{"pbcopy"}},
	"linux": {
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	},
}

// Clipboard shells out to the platform clipboard tool. Copying is
// best-effort; the pipeline logs a failure and moves on.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Enabled() bool {
	_, ok := clipboardTools[runtime.GOOS]
	return ok
}

// Copy writes text to the system clipboard via the first available tool.
func (c *Clipboard) Copy(text string) error {
	candidates, ok := clipboardTools[runtime.GOOS]
	if !ok {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	for _, candidate := range candidates {
		if _, err := exec.LookPath(candidate[0]); err != nil {
			continue
		}
		cmd := exec.Command(candidate[0], candidate[1:]...)
		cmd.Stdin = strings.NewReader(text)
		return cmd.Run()
	}
	return fmt.Errorf("no clipboard tool found (tried %s)", toolNames(candidates))
}

func toolNames(candidates [][]string) string {
	names := make([]string, len(candidates))
	for i, candidate := range candidates {
		names[i] = candidate[0]
	}
	return strings.Join(names, ", ")
}

var _ ports.Clipboard = (*Clipboard)(nil)
