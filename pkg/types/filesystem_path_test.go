// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFilesystemPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path FilesystemPath
		want bool
	}{
		{"absolute path", "/usr/share/applications", true},
		{"relative path", "mimeapps.list", true},
		{"path with spaces", "/path/to/my file.txt", true},
		{"dot path", ".", true},
		{"empty is invalid", "", false},
		{"whitespace only is invalid", "   ", false},
		{"tab only is invalid", "\t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.path.IsValid()
			if ok != tt.want {
				t.Fatalf("FilesystemPath(%q).IsValid() = %v, want %v", tt.path, ok, tt.want)
			}
			if tt.want {
				return
			}
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidFilesystemPath) {
				t.Errorf("errors = %v, want one ErrInvalidFilesystemPath", errs)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(errs[0], &fpErr) || fpErr.Value != tt.path {
				t.Errorf("error should be *InvalidFilesystemPathError for %q, got %T", tt.path, errs[0])
			}
		})
	}
}

func TestFilesystemPath_Expand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   FilesystemPath
		want FilesystemPath
	}{
		{"~/.config/handlr", FilesystemPath(filepath.Join(home, ".config", "handlr"))},
		{"~", FilesystemPath(home)},
		{"/etc//xdg/", "/etc/xdg"},
		{"rel/../x", "x"},
	}
	for _, tt := range tests {
		got, err := tt.in.Expand()
		if err != nil || got != tt.want {
			t.Errorf("Expand(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
