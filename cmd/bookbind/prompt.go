package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"bookbind/internal/archive"
)

var errNoTerminal = errors.New("archive exists and no terminal is attached; rerun with --force or --output")

// flagPrompter answers overwrite questions from command flags and falls back
// to the interactive prompter when the flags leave the question open.
type flagPrompter struct {
	force    bool
	output   string
	fallback *interactivePrompter
}

func (p *flagPrompter) ConfirmOverwrite(target string) (bool, error) {
	if p.force {
		return true, nil
	}
	if p.output != "" {
		// Asked about the supplied output path itself, the flag is the
		// answer; supplying an existing path means replacing it.
		if samePath(p.output, target) {
			return true, nil
		}
		return false, nil
	}
	return p.fallback.ConfirmOverwrite(target)
}

func (p *flagPrompter) AlternatePath(target string) (string, error) {
	if p.output != "" {
		return p.output, nil
	}
	return p.fallback.AlternatePath(target)
}

// samePath reports whether the flag value and the packager's normalized
// destination name the same file.
func samePath(flagValue, target string) bool {
	normalized, err := archive.NormalizeTarget(flagValue)
	if err != nil {
		return false
	}
	absFlag, err := filepath.Abs(normalized)
	if err != nil {
		return false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	return absFlag == absTarget
}

// interactivePrompter asks on stderr and reads answers from stdin. Without a
// terminal it refuses rather than blocking a pipeline on a question nobody
// will answer.
type interactivePrompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newInteractivePrompter(in io.Reader, out io.Writer) *interactivePrompter {
	return &interactivePrompter{in: in, reader: bufio.NewReader(in), out: out}
}

func (p *interactivePrompter) ConfirmOverwrite(target string) (bool, error) {
	if !p.terminal() {
		return false, errNoTerminal
	}
	fmt.Fprintf(p.out, "Archive %s exists. Overwrite? [y/N] ", target)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *interactivePrompter) AlternatePath(target string) (string, error) {
	if !p.terminal() {
		return "", errNoTerminal
	}
	fmt.Fprint(p.out, "Alternate destination (empty cancels): ")
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", errors.New("repack cancelled")
	}
	return answer, nil
}

func (p *interactivePrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *interactivePrompter) terminal() bool {
	f, ok := p.in.(*os.File)
	if !ok {
		// Test readers and substituted streams answer directly.
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
