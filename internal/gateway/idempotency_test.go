package gateway

import (
	"testing"
)

func TestIdempotencyKeyDeterministic(t *testing.T) {
	t.Parallel()

	a := IdempotencyKey(RailPix, "appt-1", []string{"payer@example.com", "12345678900"}, 150.0, 0)
	b := IdempotencyKey(RailPix, "appt-1", []string{"payer@example.com", "12345678900"}, 150.0, 0)
	if a != b {
		t.Fatalf("same inputs produced different keys: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestIdempotencyKeyAmountNormalized(t *testing.T) {
	t.Parallel()

	a := IdempotencyKey(RailCard, "appt-1", []string{"tok"}, 10.5, 0)
	b := IdempotencyKey(RailCard, "appt-1", []string{"tok"}, 10.50, 0)
	if a != b {
		t.Errorf("10.5 and 10.50 should hash identically")
	}
}

func TestIdempotencyKeyVariesByInput(t *testing.T) {
	t.Parallel()

	base := IdempotencyKey(RailPoint, "appt-1", []string{"term-1", "credit"}, 80.0, 0)

	cases := map[string]string{
		"rail":        IdempotencyKey(RailPix, "appt-1", []string{"term-1", "credit"}, 80.0, 0),
		"appointment": IdempotencyKey(RailPoint, "appt-2", []string{"term-1", "credit"}, 80.0, 0),
		"fields":      IdempotencyKey(RailPoint, "appt-1", []string{"term-2", "credit"}, 80.0, 0),
		"amount":      IdempotencyKey(RailPoint, "appt-1", []string{"term-1", "credit"}, 80.01, 0),
		"attempt":     IdempotencyKey(RailPoint, "appt-1", []string{"term-1", "credit"}, 80.0, 1),
	}
	for name, key := range cases {
		if key == base {
			t.Errorf("changing %s did not change the key", name)
		}
	}
}
