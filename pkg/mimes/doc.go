// SPDX-License-Identifier: MPL-2.0

// Package mimes provides the normalized MimeType value used throughout handlr
// and the lookups that turn paths, URLs and file extensions into MIME types.
package mimes
