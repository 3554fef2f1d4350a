// SPDX-License-Identifier: MPL-2.0

// Package apps resolves MIME types to desktop-entry handlers.
//
// A MimeApps store layers three mappings, strongest first: the user's
// default applications, the user's added associations and a snapshot of the
// installed applications (SystemApps). Only the two user mappings are
// persisted, in the freedesktop mimeapps.list format.
package apps
