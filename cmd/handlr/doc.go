// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the handlr command line interface.
//
// Every command is built from an App, which owns configuration, the
// mimeapps.list store and the installed-application snapshot. Commands are
// executed through fang, which styles help output and errors.
package cmd
