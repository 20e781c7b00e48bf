package usecase

import (
	"testing"

	"studio-booking/internal/data/entity"
)

func TestDerivePaymentStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		current    entity.PaymentStatus
		apptStatus entity.AppointmentStatus
		total      float64
		paidTotal  float64
		want       entity.PaymentStatus
	}{
		{"waived is sticky", entity.PaymentStatusWaived, entity.AppointmentStatusConfirmed, 150, 150, entity.PaymentStatusWaived},
		{"waived sticky even unpaid", entity.PaymentStatusWaived, entity.AppointmentStatusConfirmed, 150, 0, entity.PaymentStatusWaived},
		{"refunded holds with nothing paid", entity.PaymentStatusRefunded, entity.AppointmentStatusConfirmed, 150, 0, entity.PaymentStatusRefunded},
		{"refunded rederives when paid again", entity.PaymentStatusRefunded, entity.AppointmentStatusConfirmed, 150, 150, entity.PaymentStatusPaid},
		{"zero total is paid", entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, 0, 0, entity.PaymentStatusPaid},
		{"negative total is paid", entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, -10, 0, entity.PaymentStatusPaid},
		{"exact amount is paid", entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, 150, 150, entity.PaymentStatusPaid},
		{"sub-cent noise is paid", entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, 150, 149.995, entity.PaymentStatusPaid},
		{"one cent short is partial", entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, 150, 149.99, entity.PaymentStatusPartial},
		{"partial payment", entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, 150, 50, entity.PaymentStatusPartial},
		{"completed with partial reverts to pending", entity.PaymentStatusPartial, entity.AppointmentStatusCompleted, 150, 50, entity.PaymentStatusPending},
		{"completed fully paid stays paid", entity.PaymentStatusPartial, entity.AppointmentStatusCompleted, 150, 150, entity.PaymentStatusPaid},
		{"nothing paid is pending", entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, 150, 0, entity.PaymentStatusPending},
		{"overpaid is paid", entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, 150, 200, entity.PaymentStatusPaid},
	}

	for _, tc := range cases {
		got := derivePaymentStatus(tc.current, tc.apptStatus, tc.total, tc.paidTotal)
		if got != tc.want {
			t.Errorf("%s: derivePaymentStatus = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestDerivePaymentStatusIdempotent(t *testing.T) {
	t.Parallel()

	// Re-deriving from the same inputs must converge, whatever the current
	// value claims.
	first := derivePaymentStatus(entity.PaymentStatusPending, entity.AppointmentStatusConfirmed, 150, 50)
	second := derivePaymentStatus(first, entity.AppointmentStatusConfirmed, 150, 50)
	if first != second {
		t.Errorf("reducer did not converge: %s then %s", first, second)
	}
}
