// Copyright (c) 2025 Gabi CLI contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in messages shown to
// users, so bearer tokens never end up in terminal output, shell history
// captures, or pasted bug reports.
package logging

import (
	"regexp"
)

var (
	reBearer   = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=)([^\s;&]+)`)
	reOCPToken = regexp.MustCompile(`sha256~[A-Za-z0-9._-]+`)
)

// Mask replaces sensitive values in the input string with "***".
// Bearer headers, token= query/env pairs, and OpenShift-style sha256~ tokens
// are all covered.
func Mask(s string) string {
	out := reBearer.ReplaceAllString(s, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reOCPToken.ReplaceAllString(out, "sha256~***")
	return out
}
