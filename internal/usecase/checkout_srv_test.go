package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newCheckoutFixture(t *testing.T) (CheckoutService, *repository.Repository, uuid.UUID, *entity.Appointment) {
	t.Helper()

	repo := newTestRepo()
	tenantID := uuid.New()

	appt := &entity.Appointment{
		Base:          entity.Base{ID: uuid.New()},
		TenantID:      tenantID,
		ClientID:      uuid.New(),
		ServiceID:     uuid.New(),
		StartAt:       time.Now().Add(72 * time.Hour),
		Status:        entity.AppointmentStatusConfirmed,
		PaymentStatus: entity.PaymentStatusPending,
		Price:         300,
		TimerStatus:   entity.TimerStatusIdle,
	}
	repo.Appointment.(*fakeAppointmentRepo).appointments[appt.ID] = appt

	return NewCheckoutService(repo, zap.NewNop()), repo, tenantID, appt
}

func TestSetItemsCreatesAndRecomputes(t *testing.T) {
	t.Parallel()

	checkouts, repo, tenantID, appt := newCheckoutFixture(t)

	res, err := checkouts.SetItems(context.Background(), tenantID, appt.ID.String(), &request.SetCheckoutItemsRequest{
		Items: []request.CheckoutItemRequest{
			{ItemType: "service", Label: "Tattoo session", Qty: 1, Amount: 300},
			{ItemType: "addon", Label: "Color ink", Qty: 2, Amount: 40},
		},
	})
	if err != nil {
		t.Fatalf("SetItems: %v", err)
	}

	if res.Subtotal != 380 || res.Total != 380 {
		t.Errorf("totals = %v/%v, want 380/380", res.Subtotal, res.Total)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(res.Items))
	}

	checkout := repo.Checkout.(*fakeCheckoutRepo).checkouts[appt.ID]
	if checkout == nil {
		t.Fatal("checkout not created on first SetItems")
	}
	if checkout.Total != 380 {
		t.Errorf("persisted total = %v, want 380", checkout.Total)
	}

	stored := repo.CheckoutItem.(*fakeCheckoutItemRepo).items[checkout.ID]
	if stored[1].SortOrder != 1 {
		t.Errorf("sort order = %d, want payload position", stored[1].SortOrder)
	}
}

func TestApplyAndRemoveDiscount(t *testing.T) {
	t.Parallel()

	checkouts, _, tenantID, appt := newCheckoutFixture(t)
	ctx := context.Background()
	id := appt.ID.String()

	if _, err := checkouts.SetItems(ctx, tenantID, id, &request.SetCheckoutItemsRequest{
		Items: []request.CheckoutItemRequest{{ItemType: "service", Label: "Tattoo session", Qty: 1, Amount: 300}},
	}); err != nil {
		t.Fatalf("SetItems: %v", err)
	}

	res, err := checkouts.ApplyDiscount(ctx, tenantID, id, &request.ApplyDiscountRequest{DiscountType: "pct", Value: 25})
	if err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if res.Subtotal != 300 || res.Total != 225 {
		t.Errorf("after 25%%: %v/%v, want 300/225", res.Subtotal, res.Total)
	}

	res, err = checkouts.ApplyDiscount(ctx, tenantID, id, &request.ApplyDiscountRequest{DiscountType: "value", Value: 500})
	if err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if res.Total != 0 {
		t.Errorf("oversized value discount total = %v, want clamp at 0", res.Total)
	}

	_, err = checkouts.ApplyDiscount(ctx, tenantID, id, &request.ApplyDiscountRequest{DiscountType: "pct", Value: 120})
	if err == nil || !strings.Contains(err.Error(), "cannot exceed 100") {
		t.Errorf("pct over 100 error = %v", err)
	}

	res, err = checkouts.RemoveDiscount(ctx, tenantID, id)
	if err != nil {
		t.Fatalf("RemoveDiscount: %v", err)
	}
	if res.Total != 300 {
		t.Errorf("after removal total = %v, want 300", res.Total)
	}
	if res.DiscountType != nil {
		t.Errorf("discount type = %v, want cleared", res.DiscountType)
	}
}

func TestDiscountSettlesAlreadyCollectedBalance(t *testing.T) {
	t.Parallel()

	checkouts, repo, tenantID, appt := newCheckoutFixture(t)
	ctx := context.Background()
	id := appt.ID.String()

	if _, err := checkouts.SetItems(ctx, tenantID, id, &request.SetCheckoutItemsRequest{
		Items: []request.CheckoutItemRequest{{ItemType: "service", Label: "Tattoo session", Qty: 1, Amount: 300}},
	}); err != nil {
		t.Fatalf("SetItems: %v", err)
	}

	payment := &entity.Payment{
		Base:          entity.Base{ID: uuid.New()},
		TenantID:      tenantID,
		AppointmentID: appt.ID,
		Method:        entity.PaymentMethodCash,
		Amount:        250,
		Status:        entity.PaymentStatePaid,
	}
	repo.Payment.(*fakePaymentRepo).payments[payment.ID] = payment

	// Dropping the total to what was already collected flips the
	// appointment to paid without another charge.
	if _, err := checkouts.ApplyDiscount(ctx, tenantID, id, &request.ApplyDiscountRequest{DiscountType: "value", Value: 50}); err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if got := appt.PaymentStatus; got != entity.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid after discount", got)
	}
}

func TestCheckoutConfirmFreezesItems(t *testing.T) {
	t.Parallel()

	checkouts, repo, tenantID, appt := newCheckoutFixture(t)
	ctx := context.Background()
	id := appt.ID.String()

	if _, err := checkouts.SetItems(ctx, tenantID, id, &request.SetCheckoutItemsRequest{
		Items: []request.CheckoutItemRequest{{ItemType: "service", Label: "Tattoo session", Qty: 1, Amount: 300}},
	}); err != nil {
		t.Fatalf("SetItems: %v", err)
	}

	res, err := checkouts.Confirm(ctx, tenantID, id)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.ConfirmedAt == nil {
		t.Fatal("confirmed_at not set")
	}

	_, err = checkouts.SetItems(ctx, tenantID, id, &request.SetCheckoutItemsRequest{
		Items: []request.CheckoutItemRequest{{ItemType: "service", Label: "Tattoo session", Qty: 1, Amount: 100}},
	})
	if err == nil || !strings.Contains(err.Error(), "already confirmed") {
		t.Errorf("SetItems after confirm: %v", err)
	}
	_, err = checkouts.ApplyDiscount(ctx, tenantID, id, &request.ApplyDiscountRequest{DiscountType: "pct", Value: 10})
	if err == nil || !strings.Contains(err.Error(), "already confirmed") {
		t.Errorf("ApplyDiscount after confirm: %v", err)
	}
	_, err = checkouts.Confirm(ctx, tenantID, id)
	if err == nil || !strings.Contains(err.Error(), "already confirmed") {
		t.Errorf("double confirm: %v", err)
	}

	if got := repo.Checkout.(*fakeCheckoutRepo).checkouts[appt.ID].Total; got != 300 {
		t.Errorf("total = %v, want frozen 300", got)
	}
}

func TestCheckoutGuardsCanceledAppointment(t *testing.T) {
	t.Parallel()

	checkouts, _, tenantID, appt := newCheckoutFixture(t)
	appt.Status = entity.AppointmentStatusCanceledByClient

	_, err := checkouts.SetItems(context.Background(), tenantID, appt.ID.String(), &request.SetCheckoutItemsRequest{
		Items: []request.CheckoutItemRequest{{ItemType: "service", Label: "Tattoo session", Qty: 1, Amount: 300}},
	})
	if err == nil || !strings.Contains(err.Error(), "canceled") {
		t.Errorf("SetItems on canceled appointment: %v", err)
	}
}
