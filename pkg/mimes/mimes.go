// SPDX-License-Identifier: MPL-2.0

package mimes

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Wildcard is the subtype that matches every subtype of a type (`video/*`).
	Wildcard = "*"

	// TextPlain is the fallback type used when a MIME type has no known extensions.
	TextPlain MimeType = "text/plain"
	// InodeDirectory is the MIME type reported for directories.
	InodeDirectory MimeType = "inode/directory"
	// SchemeHandlerPrefix prefixes URL scheme pseudo-types (`x-scheme-handler/https`).
	SchemeHandlerPrefix = "x-scheme-handler/"
	// Terminal is the pseudo-type whose handler is the preferred terminal emulator.
	Terminal MimeType = SchemeHandlerPrefix + "terminal"
)

// ErrInvalidMimeType is the sentinel error wrapped by InvalidMimeTypeError.
var ErrInvalidMimeType = errors.New("invalid mime type")

type (
	// MimeType is a normalized `type/subtype` string. Normalization trims
	// whitespace, drops parameters and lower-cases the value; equality is an
	// exact string comparison after that.
	MimeType string

	// InvalidMimeTypeError is returned when a value cannot be normalized into
	// a `type/subtype` pair.
	InvalidMimeTypeError struct {
		Value  string
		Reason string
	}
)

// Parse normalizes s and validates it as a MIME type.
func Parse(s string) (MimeType, error) {
	raw := s
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	m := MimeType(strings.ToLower(strings.TrimSpace(s)))
	if ok, errs := m.IsValid(); !ok {
		var ime *InvalidMimeTypeError
		if errors.As(errs[0], &ime) {
			ime.Value = raw
		}
		return "", errs[0]
	}
	return m, nil
}

// MustParse is like Parse but panics on invalid input. Intended for constants
// and tests.
func MustParse(s string) MimeType {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the string representation of the MimeType.
func (m MimeType) String() string { return string(m) }

// IsValid reports whether m is a well-formed `type/subtype` value.
func (m MimeType) IsValid() (bool, []error) {
	typ, sub, found := strings.Cut(string(m), "/")
	switch {
	case !found:
		return false, []error{&InvalidMimeTypeError{Value: string(m), Reason: "missing '/'"}}
	case typ == "" || sub == "":
		return false, []error{&InvalidMimeTypeError{Value: string(m), Reason: "empty type or subtype"}}
	case typ == Wildcard:
		return false, []error{&InvalidMimeTypeError{Value: string(m), Reason: "type cannot be a wildcard"}}
	case strings.ContainsAny(string(m), " \t\r\n=;") || strings.Contains(sub, "/"):
		return false, []error{&InvalidMimeTypeError{Value: string(m), Reason: "unexpected character"}}
	}
	return true, nil
}

// Type returns the top-level type (`video` for `video/mp4`).
func (m MimeType) Type() string {
	typ, _, _ := strings.Cut(string(m), "/")
	return typ
}

// Subtype returns the subtype (`mp4` for `video/mp4`).
func (m MimeType) Subtype() string {
	_, sub, _ := strings.Cut(string(m), "/")
	return sub
}

// IsWildcard reports whether m is a type-level wildcard such as `video/*`.
func (m MimeType) IsWildcard() bool { return m.Subtype() == Wildcard }

// Wildcard returns the type-level wildcard for m (`video/mp4` -> `video/*`).
func (m MimeType) Wildcard() MimeType { return MimeType(m.Type() + "/" + Wildcard) }

// Error implements the error interface.
func (e *InvalidMimeTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid mime type %q", e.Value)
	}
	return fmt.Sprintf("invalid mime type %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidMimeType for errors.Is() compatibility.
func (e *InvalidMimeTypeError) Unwrap() error { return ErrInvalidMimeType }
