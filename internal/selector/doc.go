// SPDX-License-Identifier: MPL-2.0

// Package selector provides the interchangeable ways handlr asks a user to
// choose one handler: a numbered terminal prompt, an external dmenu-style
// command, and a huh select list.
package selector
