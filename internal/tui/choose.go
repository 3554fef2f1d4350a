// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user dismisses a prompt.
var ErrAborted = errors.New("user aborted")

// Option represents a selectable option with a display title and value.
type Option[T comparable] struct {
	// Title is the display text for the option.
	Title string
	// Value is the underlying value of the option.
	Value T
}

// ChooseOptions configures the Choose component.
type ChooseOptions[T comparable] struct {
	// Title is the title/prompt displayed above the options.
	Title string
	// Description provides additional context below the title.
	Description string
	// Options is the list of options to choose from.
	Options []Option[T]
	// Height limits the number of visible options (0 for auto).
	Height int
	// Config holds common TUI configuration.
	Config Config
}

// Choose prompts the user to select one option from a list.
// Returns ErrAborted if the prompt was dismissed.
func Choose[T comparable](ctx context.Context, opts ChooseOptions[T]) (T, error) {
	var result T

	huhOpts := make([]huh.Option[T], len(opts.Options))
	for i, opt := range opts.Options {
		huhOpts[i] = huh.NewOption(opt.Title, opt.Value)
	}

	sel := huh.NewSelect[T]().
		Title(opts.Title).
		Description(opts.Description).
		Options(huhOpts...).
		Value(&result)

	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	if err := newForm(opts.Config, sel).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return result, ErrAborted
		}
		return result, err
	}

	return result, nil
}

// ChooseStrings is a convenience function for choosing from string options.
// The option titles and values are the same.
func ChooseStrings(ctx context.Context, title string, options []string, config Config) (string, error) {
	opts := make([]Option[string], len(options))
	for i, o := range options {
		opts[i] = Option[string]{Title: o, Value: o}
	}
	return Choose(ctx, ChooseOptions[string]{
		Title:   title,
		Options: opts,
		Config:  config,
	})
}
