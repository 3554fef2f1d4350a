// SPDX-License-Identifier: MPL-2.0

package apps

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/handlr-go/handlr/internal/desktop"
)

// ErrInvalidHandler is the sentinel error wrapped by InvalidHandlerError.
var ErrInvalidHandler = errors.New("invalid handler")

type (
	// Handler identifies one installed application by its desktop file id
	// (e.g. "mpv.desktop"). Handlers compare by identifier only.
	Handler string

	// HandlerList is an ordered list of distinct handlers. Index 0 is the
	// default; later entries are alternates.
	HandlerList []Handler

	// InvalidHandlerError is returned when a handler id is syntactically unusable.
	InvalidHandlerError struct {
		Value string
	}
)

// ParseHandler validates the syntax of a handler id without touching the
// filesystem. Use MimeApps.ResolveHandler to also require that it is installed.
func ParseHandler(s string) (Handler, error) {
	h := Handler(strings.TrimSpace(s))
	if ok, errs := h.IsValid(); !ok {
		return "", errs[0]
	}
	return h, nil
}

// String returns the desktop file id.
func (h Handler) String() string { return string(h) }

// IsValid reports whether h can be stored in the override file: non-empty,
// ends in .desktop, and free of the list separator, '=' and whitespace.
func (h Handler) IsValid() (bool, []error) {
	s := string(h)
	if s == "" || !strings.HasSuffix(s, desktop.Extension) || len(s) == len(desktop.Extension) ||
		strings.ContainsAny(s, ";= \t\r\n/") {
		return false, []error{&InvalidHandlerError{Value: s}}
	}
	return true, nil
}

// Compare orders handlers lexicographically by identifier.
func (h Handler) Compare(other Handler) int {
	return strings.Compare(string(h), string(other))
}

// NewHandlerList builds a list from hs, dropping duplicates (first occurrence wins).
func NewHandlerList(hs ...Handler) HandlerList {
	var l HandlerList
	for _, h := range hs {
		l = l.Append(h)
	}
	return l
}

// Append returns l with h added at the end, unless it is already present.
func (l HandlerList) Append(h Handler) HandlerList {
	if l.Contains(h) {
		return l
	}
	return append(l, h)
}

// Contains reports whether h is in l.
func (l HandlerList) Contains(h Handler) bool {
	return slices.Contains(l, h)
}

// First returns the default handler of the list.
func (l HandlerList) First() (Handler, bool) {
	if len(l) == 0 {
		return "", false
	}
	return l[0], true
}

// String joins the handlers for display ("a.desktop, b.desktop").
func (l HandlerList) String() string {
	parts := make([]string, len(l))
	for i, h := range l {
		parts[i] = string(h)
	}
	return strings.Join(parts, ", ")
}

// Error implements the error interface.
func (e *InvalidHandlerError) Error() string {
	return fmt.Sprintf("invalid handler %q: expected a desktop file id such as firefox.desktop", e.Value)
}

// Unwrap returns ErrInvalidHandler for errors.Is() compatibility.
func (e *InvalidHandlerError) Unwrap() error { return ErrInvalidHandler }
