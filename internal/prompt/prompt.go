// Package prompt implements interactive yes/no confirmation.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// PrompterIface asks the user a yes/no question.
// revive:disable-next-line exported
type PrompterIface interface {
	Confirm(question string) (bool, error)
}

// Prompter reads the answer from an input stream. Anything other than an
// explicit "y"/"yes" declines, including an empty answer or EOF.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// Confirm asks the question and returns true only on an explicit yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// NewPrompter creates a Prompter reading stdin and writing stderr.
func NewPrompter() *Prompter {
	return &Prompter{in: os.Stdin, out: os.Stderr}
}

// NewPrompterWith creates a Prompter with explicit streams.
func NewPrompterWith(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}
