// SPDX-License-Identifier: MPL-2.0

// Package config handles handlr configuration using Viper with TOML as the
// file format.
//
// The file lives at $XDG_CONFIG_HOME/handlr/handlr.toml and is created with
// default values on first use. HANDLR_* environment variables override file
// values (HANDLR_ENABLE_SELECTOR, HANDLR_SELECTOR, HANDLR_UI_VERBOSE, ...).
// The package also locates the freedesktop mimeapps.list override file.
package config
