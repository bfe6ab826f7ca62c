// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package citation

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	pdfSuffix     = regexp.MustCompile(`(?i)\.pdf$`)
	factSheetName = regexp.MustCompile(`(?i)WHO_Fact_Sheet_`)
)

// DisplayName converts a raw document source name into a human-readable
// title for the source viewer: URL escapes are decoded, the ".pdf" suffix
// and "WHO_Fact_Sheet_" prefix are stripped, and underscores become spaces.
//
//	"WHO_Fact_Sheet_Malaria.pdf" -> "Malaria"
//	"Healthy%20Diet.pdf"         -> "Healthy Diet"
func DisplayName(raw string) string {
	name := raw
	if decoded, err := url.QueryUnescape(raw); err == nil {
		name = decoded
	}
	name = pdfSuffix.ReplaceAllString(name, "")
	name = factSheetName.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}
