package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// Prompter implements ports.Prompter over stdio. It shows the candidate
// command, any warnings, and blocks on a single yes/no read.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Enabled indicates the prompter is interactive.
func (p *Prompter) Enabled() bool {
	return true
}

// Confirm shows the command and its verdict, then reads one answer. Only
// "y" or "yes" (case-insensitive) approve; anything else declines.
func (p *Prompter) Confirm(command string, verdict domain.RiskVerdict) (bool, error) {
	fmt.Fprintf(p.out, "\n%s\n", commandStyle.Render(command))
	if !verdict.Safe() {
		fmt.Fprintln(p.out, warningStyle.Render("Warning:"))
		for _, reason := range verdict.Reasons {
			fmt.Fprintf(p.out, "  - %s\n", reason)
		}
	}

	fmt.Fprint(p.out, "Execute? [y/N]: ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

var _ ports.Prompter = (*Prompter)(nil)
