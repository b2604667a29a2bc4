// Package strings carries small string-slice helpers shared across the
// ledger services.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each element, drops empties and repeats, and keeps the
// first occurrence's position. Comma-split env lists (Kafka brokers, CORS
// origins) pass through here so a doubled entry never doubles a connection.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
