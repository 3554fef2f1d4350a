// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/handlr-go/handlr/internal/apps"
	"github.com/handlr-go/handlr/internal/issue"
	"github.com/handlr-go/handlr/internal/selector"
	"github.com/handlr-go/handlr/pkg/mimes"

	"github.com/charmbracelet/fang"
	"golang.org/x/term"
)

const notifyErrorTitle = "handlr error"

// classifyError maps a command failure to an issue catalog id. Zero means no
// catalog entry applies.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	switch {
	case errors.Is(err, apps.ErrNoTerminal):
		return issue.NoTerminalId
	case errors.Is(err, apps.ErrInvalidHandler):
		return issue.HandlerNotInstalledId
	case errors.Is(err, apps.ErrNotFound):
		var nf *apps.NotFoundError
		if errors.As(err, &nf) && strings.HasSuffix(nf.Name, ".desktop") {
			return issue.HandlerNotInstalledId
		}
		return issue.NoHandlerId
	case errors.Is(err, mimes.ErrInvalidMimeType), errors.Is(err, mimes.ErrUnknownExtension):
		return issue.InvalidMimeTypeId
	case errors.Is(err, selector.ErrSelector):
		return issue.SelectorFailedId
	case errors.Is(err, apps.ErrPersistence):
		return issue.MimeappsAccessFailedId
	}
	return 0
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method, which adds the error chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// handleError is the fang error handler. Cancelled selections exit quietly.
// Everything else is printed with fang's styling, followed by the catalog
// entry in verbose mode. When stdout is not a terminal (handlr started from
// a launcher or file manager) the message is also sent as a notification.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	if errors.Is(err, apps.ErrCancelled) {
		return
	}

	msg := formatErrorForDisplay(err, a.verbose)
	fang.DefaultErrorHandler(w, styles, errors.New(msg))

	if a.verbose {
		a.renderIssue(w, classifyError(err))
	}
	if !isTerminal(a.stdout) {
		a.notify(context.Background(), notifyErrorTitle, msg)
	}
}

func (a *App) renderIssue(w io.Writer, id issue.Id) {
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	style := "notty"
	if isTerminal(a.stderr) {
		style = "dark"
	}
	rendered, err := entry.Render(style)
	if err != nil {
		a.logger.Warn("failed to render issue catalog entry", "issueID", id, "err", err)
		return
	}
	fmt.Fprint(w, rendered)
}

// isTerminal reports whether w is a terminal device.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
