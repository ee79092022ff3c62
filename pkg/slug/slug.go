// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are used as human-readable identifiers for channel handles and video
// permalinks (e.g., "late-night-synthwave"). Accented characters are reduced
// to their base letters; everything else becomes a hyphen separator.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// The input is decomposed to NFD so accents become combining marks, which are
// then dropped ("Việt" → "Viet"). Remaining runes are lowercased; any run of
// runes outside [a-z0-9] collapses into a single hyphen. Leading and trailing
// hyphens are never emitted, so the result is either empty or starts and ends
// with an alphanumeric character.
func From(s string) string {
	decomposed, _, _ := transform.String(norm.NFD, s)

	var builder strings.Builder
	builder.Grow(len(decomposed))

	pendingHyphen := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			// Combining mark left over from the NFD decomposition.
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return builder.String()
}
