package usecase

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// derivePaymentStatus is the single place the appointment-level payment
// status is computed. It is a pure re-derivation from current totals, so
// concurrent invocations converge on the same value.
func derivePaymentStatus(current entity.PaymentStatus, apptStatus entity.AppointmentStatus, total, paidTotal float64) entity.PaymentStatus {
	switch {
	case current == entity.PaymentStatusWaived:
		// Manual waive is sticky; payment math never silently overrides it.
		return entity.PaymentStatusWaived
	case current == entity.PaymentStatusRefunded && paidTotal <= 0:
		return entity.PaymentStatusRefunded
	case total <= 0:
		return entity.PaymentStatusPaid
	case almostGTE(paidTotal, total):
		return entity.PaymentStatusPaid
	case paidTotal > 0:
		// A completed session with incomplete payment reverts to pending to
		// flag that collection follow-up is needed post-session.
		if apptStatus == entity.AppointmentStatusCompleted {
			return entity.PaymentStatusPending
		}
		return entity.PaymentStatusPartial
	default:
		return entity.PaymentStatusPending
	}
}

// recalcAppointmentPaymentStatus rereads the checkout total (falling back to
// the appointment price when no checkout exists), sums paid payments, derives
// the next status and writes it back when it changed. Safe to call from any
// payment-mutating code path.
func recalcAppointmentPaymentStatus(
	ctx context.Context,
	repo *repository.Repository,
	log *zap.Logger,
	tenantID, appointmentID uuid.UUID,
) (entity.PaymentStatus, float64, float64, error) {
	appt, err := repo.Appointment.FindByID(ctx, tenantID, appointmentID)
	if err != nil {
		return "", 0, 0, fmt.Errorf("recalculate payment status: %w", err)
	}
	if appt == nil {
		return "", 0, 0, fmt.Errorf("appointment %s not found", appointmentID.String())
	}

	total := appt.EffectivePrice()
	checkout, err := repo.Checkout.FindByAppointmentID(ctx, tenantID, appointmentID)
	if err != nil {
		return "", 0, 0, fmt.Errorf("recalculate payment status: %w", err)
	}
	if checkout != nil {
		total = checkout.Total
	}

	paidTotal, err := repo.Payment.SumPaidByAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return "", 0, 0, fmt.Errorf("recalculate payment status: %w", err)
	}

	total = Round2(total)
	paidTotal = Round2(paidTotal)

	next := derivePaymentStatus(appt.PaymentStatus, appt.Status, total, paidTotal)

	if next != appt.PaymentStatus {
		if err := repo.Appointment.UpdatePaymentStatus(ctx, tenantID, appointmentID, next); err != nil {
			return "", 0, 0, fmt.Errorf("recalculate payment status: %w", err)
		}
	}

	log.Info("Payment status recalculated",
		zap.String("appointment_id", appointmentID.String()),
		zap.String("previous", string(appt.PaymentStatus)),
		zap.String("next", string(next)),
		zap.Float64("paid_total", paidTotal),
		zap.Float64("total", total),
	)

	return next, paidTotal, total, nil
}
