package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// IdempotencyKey derives a stable key from the logical charge identity.
// The same (rail, appointment, fields, amount, attempt) tuple always hashes
// to the same key, collapsing accidental double-submits gateway-side, while
// an intentional retry bumps attempt and produces a fresh key.
func IdempotencyKey(rail, appointmentID string, fields []string, amount float64, attempt int) string {
	parts := []string{
		rail,
		appointmentID,
		strings.Join(fields, "|"),
		fmt.Sprintf("%.2f", amount),
		fmt.Sprintf("%d", attempt),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
