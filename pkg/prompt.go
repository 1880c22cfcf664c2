package tagrelease

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter collects answers from the person running the release.
type Prompter interface {
	// AskInt asks for a single integer.
	AskInt(label string) (int, error)
	// Confirm asks a yes/no question; anything but yes is no.
	Confirm(question string) (bool, error)
}

var errNoInput = errors.New("no input")

// LinePrompter prompts on out and reads one answer per line from in.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) AskInt(label string) (int, error) {
	fmt.Fprintf(p.out, "%s:\n", label)
	line, err := p.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", line)
	}
	return n, nil
}

// Confirm treats end of input as no.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.readLine()
	if errors.Is(err, errNoInput) {
		fmt.Fprintln(p.out)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
