// SPDX-License-Identifier: MPL-2.0

package desktop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ErrEmptyExec is returned when an entry's Exec template expands to nothing.
var ErrEmptyExec = errors.New("empty Exec command")

// LaunchOptions configures how Launch starts processes.
type LaunchOptions struct {
	// Terminal is the argv prefix used for entries with Terminal=true,
	// e.g. ["foot", "-e"]. Empty means run the command directly.
	Terminal []string
	// Wait blocks until every process exits instead of detaching.
	Wait bool
	// Stdin, Stdout and Stderr are connected to waited-for processes.
	// Detached processes never inherit them.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Argv expands the Exec template with the given arguments and returns one
// argv per process to start. Templates with a single-file field code (%f, %u)
// start one process per argument; list codes (%F, %U) receive every argument
// at once. Templates without a file field code get the arguments appended.
func (e *Entry) Argv(args []string) ([][]string, error) {
	fields, err := shell.Fields(e.Exec, func(name string) string { return "$" + name })
	if err != nil {
		return nil, fmt.Errorf("split Exec of %s: %w", e.ID, err)
	}

	single, list := false, false
	for _, f := range fields {
		switch f {
		case "%f", "%u":
			single = true
		case "%F", "%U":
			list = true
		}
	}

	if single && !list && len(args) > 1 {
		argvs := make([][]string, 0, len(args))
		for _, arg := range args {
			argv, err := e.expand(fields, []string{arg})
			if err != nil {
				return nil, err
			}
			argvs = append(argvs, argv)
		}
		return argvs, nil
	}

	argv, err := e.expand(fields, args)
	if err != nil {
		return nil, err
	}
	if !single && !list {
		argv = append(argv, args...)
	}
	return [][]string{argv}, nil
}

func (e *Entry) expand(fields, args []string) ([]string, error) {
	argv := make([]string, 0, len(fields)+len(args))
	for _, f := range fields {
		switch f {
		case "%f", "%u":
			if len(args) > 0 {
				argv = append(argv, args[0])
			}
		case "%F", "%U":
			argv = append(argv, args...)
		case "%i":
			if e.Icon != "" {
				argv = append(argv, "--icon", e.Icon)
			}
		case "%c":
			argv = append(argv, e.Name)
		case "%k":
			argv = append(argv, e.Path)
		case "%d", "%D", "%n", "%N", "%v", "%m":
			// Deprecated field codes expand to nothing.
		default:
			argv = append(argv, expandInline(f, e))
		}
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyExec, e.ID)
	}
	return argv, nil
}

// expandInline handles field codes embedded in a larger argument
// (e.g. `--class=%c`) and the `%%` escape.
func expandInline(f string, e *Entry) string {
	if !strings.Contains(f, "%") {
		return f
	}
	r := strings.NewReplacer("%%", "%", "%c", e.Name, "%k", e.Path,
		"%f", "", "%F", "", "%u", "", "%U", "", "%i", "")
	return r.Replace(f)
}

// Command returns a display string for the expanded command, as used by
// `get --json`.
func (e *Entry) Command(args []string) (string, error) {
	argvs, err := e.Argv(args)
	if err != nil {
		return "", err
	}
	return strings.Join(argvs[0], " "), nil
}

// Launch starts the entry with args. Processes are detached unless
// opts.Wait is set.
func (e *Entry) Launch(ctx context.Context, args []string, opts LaunchOptions) error {
	argvs, err := e.Argv(args)
	if err != nil {
		return err
	}

	for _, argv := range argvs {
		if e.Terminal && len(opts.Terminal) > 0 {
			argv = append(append([]string{}, opts.Terminal...), argv...)
		}
		if opts.Wait {
			cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
			cmd.Stdin, cmd.Stdout, cmd.Stderr = opts.Stdin, opts.Stdout, opts.Stderr
			if err := cmd.Run(); err != nil {
				return fmt.Errorf("run %s: %w", e.ID, err)
			}
			continue
		}
		// A detached child must outlive the command context.
		cmd := exec.Command(argv[0], argv[1:]...)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start %s: %w", e.ID, err)
		}
		if err := cmd.Process.Release(); err != nil {
			return fmt.Errorf("release %s: %w", e.ID, err)
		}
	}
	return nil
}
