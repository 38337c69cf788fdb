package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Input reads one decision from the person at the keyboard.
type Input interface {
	// Select returns the 0-based index of the chosen option.
	Select(text string, options []string) (int, error)
	Confirm(question string) (bool, error)
}

// PtermInput asks with pterm's interactive select and confirm widgets.
type PtermInput struct{}

func (PtermInput) Select(text string, options []string) (int, error) {
	// Labels are numbered so duplicates (two copies of a card) stay distinct.
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = fmt.Sprintf("%d) %s", i+1, o)
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(text).
		WithOptions(labels).
		WithMaxHeight(10).
		Show()
	if err != nil {
		return -1, err
	}
	for i, l := range labels {
		if l == choice {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown selection %q", choice)
}

func (PtermInput) Confirm(question string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultText(question).Show()
}

// LineInput reads numbered answers line by line, for pipes and dumb terminals.
type LineInput struct {
	r   *bufio.Reader
	out io.Writer
}

func NewLineInput(r io.Reader, out io.Writer) *LineInput {
	return &LineInput{r: bufio.NewReader(r), out: out}
}

func (in *LineInput) Select(text string, options []string) (int, error) {
	fmt.Fprintln(in.out, pterm.LightCyan(text))
	for i, o := range options {
		fmt.Fprintf(in.out, "  %d) %s\n", i+1, o)
	}
	for {
		fmt.Fprint(in.out, "> ")
		line, err := in.readLine()
		if err != nil {
			return -1, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(in.out, "Enter a number between 1 and %d\n", len(options))
			continue
		}
		return n - 1, nil
	}
}

func (in *LineInput) Confirm(question string) (bool, error) {
	fmt.Fprintf(in.out, "%s (y/n): ", pterm.LightCyan(question))
	for {
		line, err := in.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprint(in.out, "Enter y or n: ")
		}
	}
}

// readLine returns the next trimmed line. A final line without a newline
// still counts; io.EOF is returned only when nothing is left.
func (in *LineInput) readLine() (string, error) {
	line, err := in.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
