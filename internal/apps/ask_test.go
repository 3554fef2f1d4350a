// SPDX-License-Identifier: MPL-2.0

package apps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/handlr-go/handlr/internal/desktop"
	"github.com/handlr-go/handlr/pkg/mimes"
)

func ids(entries []*desktop.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestMimeApps_Candidates(t *testing.T) {
	t.Parallel()

	db := fakeMimeDB{
		exts: map[mimes.MimeType][]string{
			"text/markdown": {".md", ".markdown"},
			"text/plain":    {".txt"},
		},
		byExt: map[string]mimes.MimeType{
			".md":       "text/markdown",
			".markdown": "text/x-markdown",
			".txt":      "text/plain",
		},
	}
	installed := []*desktop.Entry{
		app("gedit.desktop", "gedit", "text/plain"),
		app("ghostwriter.desktop", "ghostwriter", "text/markdown"),
		app("typora.desktop", "Typora", "text/x-markdown", "text/markdown"),
		app("mpv.desktop", "mpv", "video/mp4"),
	}

	t.Run("resolved handler leads and aliases fill", func(t *testing.T) {
		t.Parallel()
		a := newStore(t, Options{MimeDB: db}, installed...)
		a.SetHandler("text/*", "gedit.desktop")

		got, err := a.Candidates(context.Background(), "text/markdown")
		if err != nil {
			t.Fatalf("Candidates() error: %v", err)
		}
		want := []string{"gedit.desktop", "ghostwriter.desktop", "typora.desktop"}
		if !reflect.DeepEqual(ids(got), want) {
			t.Errorf("Candidates() = %v, want %v", ids(got), want)
		}
	})

	t.Run("no extensions falls back to text/plain", func(t *testing.T) {
		t.Parallel()
		a := newStore(t, Options{MimeDB: db}, installed...)

		got, err := a.Candidates(context.Background(), "application/x-unknown")
		if err != nil {
			t.Fatalf("Candidates() error: %v", err)
		}
		if want := []string{"gedit.desktop"}; !reflect.DeepEqual(ids(got), want) {
			t.Errorf("Candidates() = %v, want %v", ids(got), want)
		}
	})

	t.Run("selector is not consulted while gathering", func(t *testing.T) {
		t.Parallel()
		sel := &stubSelector{choice: "gedit"}
		a := newStore(t, Options{MimeDB: db, EnableSelector: true, Selector: sel}, installed...)
		a.SetHandler("text/markdown", "ghostwriter.desktop")
		a.AddHandler("text/markdown", "typora.desktop")

		got, err := a.Candidates(context.Background(), "text/markdown")
		if err != nil {
			t.Fatalf("Candidates() error: %v", err)
		}
		if sel.calls != 0 {
			t.Errorf("selector called %d times", sel.calls)
		}
		if len(got) == 0 || got[0].ID != "ghostwriter.desktop" {
			t.Errorf("Candidates() = %v, want ghostwriter first", ids(got))
		}
	})
}

func TestMimeApps_Candidates_Floor(t *testing.T) {
	t.Parallel()

	var installed []*desktop.Entry
	for i := range MinCandidates {
		installed = append(installed, app(fmt.Sprintf("img%02d.desktop", i), "img", "image/png"))
	}
	installed = append(installed, app("alias.desktop", "alias", "image/x-png"))

	db := fakeMimeDB{
		exts:  map[mimes.MimeType][]string{"image/png": {".png"}},
		byExt: map[string]mimes.MimeType{".png": "image/x-png"},
	}
	a := newStore(t, Options{MimeDB: db}, installed...)

	got, err := a.Candidates(context.Background(), "image/png")
	if err != nil {
		t.Fatalf("Candidates() error: %v", err)
	}
	if len(got) != MinCandidates {
		t.Errorf("got %d candidates, want %d (aliases skipped once the floor is met)", len(got), MinCandidates)
	}
}

func TestMimeApps_AskHandler(t *testing.T) {
	t.Parallel()

	installed := []*desktop.Entry{
		app("feh.desktop", "feh", "image/png"),
		app("gimp.desktop", "GIMP", "image/png"),
	}
	db := fakeMimeDB{}

	t.Run("pick", func(t *testing.T) {
		t.Parallel()
		sel := &stubSelector{choice: "GIMP -- gimp.desktop"}
		a := newStore(t, Options{MimeDB: db}, installed...)

		e, err := a.AskHandler(context.Background(), "image/png", sel, nil)
		if err != nil {
			t.Fatalf("AskHandler() error: %v", err)
		}
		if e.ID != "gimp.desktop" {
			t.Errorf("AskHandler() = %s, want gimp.desktop", e.ID)
		}
		want := []string{"feh -- feh.desktop", "GIMP -- gimp.desktop"}
		if !reflect.DeepEqual(sel.offered, want) {
			t.Errorf("offered %v, want %v", sel.offered, want)
		}
	})

	t.Run("single candidate is still offered", func(t *testing.T) {
		t.Parallel()
		sel := &stubSelector{choice: "feh.desktop"}
		a := newStore(t, Options{MimeDB: db}, installed[0])

		e, err := a.AskHandler(context.Background(), "image/png", sel, func(e *desktop.Entry) string { return e.ID })
		if err != nil || e.ID != "feh.desktop" {
			t.Fatalf("AskHandler() = %v, %v", e, err)
		}
		if sel.calls != 1 {
			t.Errorf("selector calls = %d, want 1", sel.calls)
		}
	})

	t.Run("empty selection cancels", func(t *testing.T) {
		t.Parallel()
		a := newStore(t, Options{MimeDB: db}, installed...)
		if _, err := a.AskHandler(context.Background(), "image/png", &stubSelector{}, nil); !errors.Is(err, ErrCancelled) {
			t.Errorf("expected ErrCancelled, got %v", err)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		a := newStore(t, Options{MimeDB: db}, installed...)
		sel := &stubSelector{choice: "x"}
		if _, err := a.AskHandler(context.Background(), "audio/flac", sel, nil); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if sel.calls != 0 {
			t.Error("selector should not be called without candidates")
		}
	})
}
