// Package repair reconstructs records corrupted by an upstream column split.
//
// The symptom: a whole comma-joined line lands in a single cell, leaving
// the named columns empty. The recovery is positional and best-effort —
// the first three comma-separated parts are taken as name, rating and
// position, and the rating text is deliberately not re-validated. The
// pass is kept separate from normalization so it can be disabled and
// tested on its own.
package repair

import "strings"

const minParts = 3

// FromColumnSplit splits raw on commas, trimming each part. It reports ok
// only when raw actually contains a comma and yields at least three
// parts; anything less is left for the caller to drop.
func FromColumnSplit(raw string) (name, rating, position string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.Contains(raw, ",") {
		return "", "", "", false
	}

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < minParts {
		return "", "", "", false
	}

	return parts[0], parts[1], parts[2], true
}
