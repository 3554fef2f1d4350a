// SPDX-License-Identifier: MPL-2.0

// Package tui provides terminal UI components built on Charm libraries.
//
// It wraps charmbracelet/huh so the rest of handlr can ask the user to pick
// from a list without depending on form internals.
package tui
