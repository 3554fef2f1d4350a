// SPDX-License-Identifier: MPL-2.0

// Package desktop reads freedesktop.org desktop entries from the XDG
// application directories and starts the programs they describe.
//
// Parsing is delegated to github.com/rkoesters/xdg/desktop; this package adds
// desktop-file-id handling, directory precedence, and Exec field-code
// expansion.
package desktop
