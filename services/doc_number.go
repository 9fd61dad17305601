package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// docPeriod returns the YYMM period a document number belongs to.
// Mar 2026 → "2603"
func docPeriod(t time.Time) string {
	return fmt.Sprintf("%02d%02d", t.Year()%100, int(t.Month()))
}

// formatDocNumber constructs the document number string from components.
func formatDocNumber(prefix, period string, sequence int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, period, sequence)
}

// GenerateDocNumber creates the next document number for a kind.
// Format: {prefix}-{YYMM}-{sequence}
//   - prefix: INV, OFF, LOG or CIQ depending on the kind
//   - YYMM: year and month of now
//   - sequence: 3-digit zero-padded, per kind per month
func GenerateDocNumber(app core.App, kind DocumentKind, now time.Time) (string, error) {
	prefix := kind.Prefix()
	if prefix == "" {
		return "", fmt.Errorf("%w: unknown document kind %q", ErrValidation, kind)
	}
	period := docPeriod(now)

	existing, err := app.FindRecordsByFilter(
		"documents",
		"kind = {:kind} && doc_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"kind":   string(kind),
			"prefix": fmt.Sprintf("%s-%s-", prefix, period) + "%",
		},
	)
	if err != nil {
		// No documents yet for this kind and period.
		existing = nil
	}

	return formatDocNumber(prefix, period, len(existing)+1), nil
}
