// Package confirm asks the user before destructive filesystem changes.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"catty/internal/logger"
)

// Gate approves or rejects a single action.
type Gate interface {
	Confirm(question string) (bool, error)
}

// Always approves everything. Used for --yes.
type Always struct{}

func (Always) Confirm(string) (bool, error) { return true, nil }

// Prompt asks on a terminal. An empty answer asks again; anything other than
// y or n counts as no.
type Prompt struct {
	in     *bufio.Reader
	out    io.Writer
	logger *logger.Logger
}

// NewPrompt reads answers from in and writes questions to out.
func NewPrompt(in io.Reader, out io.Writer, log *logger.Logger) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out, logger: log}
}

var promptColor = color.New(color.FgCyan)

func (p *Prompt) Confirm(question string) (bool, error) {
	for {
		promptColor.Fprintf(p.out, "%s [Y/n] ", question)

		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}

		switch answer := strings.TrimSpace(line); answer {
		case "y", "Y":
			return true, nil
		case "n", "N":
			return false, nil
		case "":
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out)
				return false, nil
			}
		default:
			p.logger.Error("invalid input '%s', assuming (n)o", answer)
			return false, nil
		}
	}
}
