// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os/exec"
)

// notifyTimeoutMillis is how long notifications stay on screen.
const notifyTimeoutMillis = "10000"

type (
	// Notifier shows desktop notifications.
	Notifier interface {
		Notify(ctx context.Context, title, msg string) error
	}

	// notifySend delivers notifications through the notify-send utility.
	notifySend struct{}
)

// Notify implements Notifier.
func (notifySend) Notify(ctx context.Context, title, msg string) error {
	cmd := exec.CommandContext(ctx, "notify-send", "-t", notifyTimeoutMillis, title, msg)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send: %w", err)
	}
	return nil
}
