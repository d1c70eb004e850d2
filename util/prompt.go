package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks questions on w and reads one-line answers from r.
// Failed or empty reads fall back to the question's default.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

func (p *Prompter) String(prompt string, def string) string {
	fmt.Fprintf(p.w, "%s (%s): ", prompt, def)

	response, err := p.r.ReadString('\n')
	if err != nil && response == "" {
		return def
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return def
	}
	return response
}

func (p *Prompter) YN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(p.w, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(p.w, "%s (y/N): ", prompt)
	}

	response, err := p.r.ReadString('\n')
	if err != nil && response == "" {
		return def
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return def
	}
	return strings.EqualFold(response, "y")
}

// terminal is the Prompter the package-level helpers talk through.
var terminal = NewPrompter(os.Stdin, os.Stdout)

// PromptString asks on stdout and reads one line from stdin.
func PromptString(prompt string, def string) string {
	return terminal.String(prompt, def)
}

// PromptYN asks a yes/no question on stdout.
func PromptYN(prompt string, def bool) bool {
	return terminal.YN(prompt, def)
}
