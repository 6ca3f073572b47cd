package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// Prompter shows a one-line prompt and returns the line typed in response,
// without its line terminator. io.EOF means the input is exhausted.
type Prompter interface {
	Prompt(text string) (string, error)
}

// ══════════════════════════════════════════════════════════════════════════════
// SCAN PROMPTER
// ══════════════════════════════════════════════════════════════════════════════

// ScanPrompter reads lines from any reader. It is used for pipes, files and tests.
type ScanPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewScanPrompter creates a prompter reading from in and echoing prompts to out.
func NewScanPrompter(in io.Reader, out io.Writer) *ScanPrompter {
	return &ScanPrompter{in: bufio.NewReader(in), out: out}
}

// Prompt implements Prompter.
func (p *ScanPrompter) Prompt(text string) (string, error) {
	if _, err := io.WriteString(p.out, text); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LINE PROMPTER
// ══════════════════════════════════════════════════════════════════════════════

// LinePrompter edits lines on a terminal with history.
// Ctrl-C discards the current line; Ctrl-D on an empty line ends input.
type LinePrompter struct {
	state       *liner.State
	historyFile string
}

// NewLinePrompter puts the terminal in line-editing mode. History is read from
// historyFile when it exists and written back by Close; an empty name keeps
// history in memory only.
func NewLinePrompter(historyFile string) (*LinePrompter, error) {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyFile != "" {
		f, err := os.Open(historyFile)
		if err == nil {
			_, err = state.ReadHistory(f)
			f.Close()
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			state.Close()
			return nil, fmt.Errorf("cli: read history: %w", err)
		}
	}

	return &LinePrompter{state: state, historyFile: historyFile}, nil
}

// Prompt implements Prompter.
func (p *LinePrompter) Prompt(text string) (string, error) {
	line, err := p.state.Prompt(text)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", nil
	case err != nil:
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal and saves history.
func (p *LinePrompter) Close() error {
	var saveErr error
	if p.historyFile != "" {
		f, err := os.Create(p.historyFile)
		if err == nil {
			_, err = p.state.WriteHistory(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
		saveErr = err
	}

	if err := p.state.Close(); err != nil {
		return err
	}
	return saveErr
}

// ══════════════════════════════════════════════════════════════════════════════
// SELECTION
// ══════════════════════════════════════════════════════════════════════════════

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewPrompter returns a LinePrompter when both in and out are terminals and a
// ScanPrompter otherwise. The returned close function must be called on exit.
func NewPrompter(in, out *os.File, historyFile string) (Prompter, func() error, error) {
	if IsTerminal(in) && IsTerminal(out) {
		lp, err := NewLinePrompter(historyFile)
		if err != nil {
			return nil, nil, err
		}
		return lp, lp.Close, nil
	}
	return NewScanPrompter(in, out), func() error { return nil }, nil
}
