// SPDX-License-Identifier: MPL-2.0

package selector

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/handlr-go/handlr/internal/tui"

	"mvdan.cc/sh/v3/shell"
)

// ErrSelector is the sentinel error wrapped by CommandError.
var ErrSelector = errors.New("selector failed")

type (
	// Selector asks the user to pick one label out of many. ok is false when
	// the user dismissed the prompt without choosing.
	Selector interface {
		Select(ctx context.Context, prompt string, items []string) (choice string, ok bool, err error)
	}

	// Terminal is a line-numbered picker: it prints the items to Out, reads a
	// 1-based index from In and re-prompts on invalid input. An empty line or
	// end of input selects nothing.
	Terminal struct {
		In  io.Reader
		Out io.Writer
	}

	// Command pipes the newline-joined items into an external program
	// (rofi, fzf, dmenu, ...) and takes its trimmed stdout as the choice.
	Command struct {
		// Line is the shell-style command line, e.g. "rofi -dmenu -i -p 'Open With: '".
		Line string
		// Err receives the program's stderr. Nil means os.Stderr.
		Err io.Writer
	}

	// TUI renders a charmbracelet/huh select list.
	TUI struct {
		Config tui.Config
	}

	// CommandError is returned when the external selector cannot be started
	// or its pipes cannot be used.
	CommandError struct {
		Command string
		Err     error
	}
)

// NewTerminal returns a Terminal reading stdin and writing prompts to stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// Select implements Selector.
func (t *Terminal) Select(ctx context.Context, prompt string, items []string) (string, bool, error) {
	if len(items) == 0 {
		return "", false, nil
	}
	reader := bufio.NewReader(t.In)
	for {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		for i, item := range items {
			fmt.Fprintf(t.Out, "%d: %s\n", i+1, item)
		}
		fmt.Fprintf(t.Out, "%s (number/empty): ", prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", false, fmt.Errorf("read selection: %w", err)
		}
		input := strings.TrimSpace(line)
		if input == "" {
			return "", false, nil
		}
		if n, convErr := strconv.Atoi(input); convErr == nil && n > 0 && n <= len(items) {
			return items[n-1], true, nil
		}
		fmt.Fprintln(t.Out, "invalid selection input")
		fmt.Fprintln(t.Out)
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
	}
}

// Select implements Selector.
func (c *Command) Select(ctx context.Context, _ string, items []string) (string, bool, error) {
	argv, err := shell.Fields(c.Line, nil)
	if err != nil {
		return "", false, &CommandError{Command: c.Line, Err: err}
	}
	if len(argv) == 0 {
		return "", false, &CommandError{Command: c.Line, Err: errors.New("empty selector command")}
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(strings.Join(items, "\n"))
	cmd.Stdout = &stdout
	cmd.Stderr = c.Err
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", false, &CommandError{Command: c.Line, Err: err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}
		// Dismissing rofi/dmenu exits non-zero; only the output matters.
	}

	choice := strings.TrimSpace(stdout.String())
	if choice == "" {
		return "", false, nil
	}
	return choice, true, nil
}

// Select implements Selector. A single item is returned without prompting.
func (s *TUI) Select(ctx context.Context, prompt string, items []string) (string, bool, error) {
	switch len(items) {
	case 0:
		return "", false, nil
	case 1:
		return items[0], true, nil
	}
	choice, err := tui.ChooseStrings(ctx, prompt, items, s.Config)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return choice, choice != "", nil
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("selector %q failed: %v", e.Command, e.Err)
}

// Unwrap returns ErrSelector for errors.Is() compatibility.
func (e *CommandError) Unwrap() error { return ErrSelector }
