package ui

import (
	"strings"

	"forest-ca/internal/core"
)

// statusKeys are the run counters shown in the overlay, in display order.
var statusKeys = []string{"step", "frame", "count", "burning", "burned"}

// StatusLine renders the run counters present in snap as "label value"
// pairs. Keys the sim does not report are skipped.
func StatusLine(snap core.ParameterSnapshot) string {
	var parts []string
	for _, key := range statusKeys {
		if p, ok := snap.Lookup(key); ok {
			parts = append(parts, strings.ToLower(p.Label)+" "+p.Value)
		}
	}
	return strings.Join(parts, "  ")
}
