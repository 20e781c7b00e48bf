package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/appointments/{id}/payments", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Staff, log))

		// POST /api/appointments/{id}/payments/pix - QR charge
		r.Post("/pix", paymentHandler.CreatePixCharge)

		// POST /api/appointments/{id}/payments/card - tokenized card charge
		r.Post("/card", paymentHandler.CreateCardCharge)

		// POST /api/appointments/{id}/payments/point - terminal charge
		r.Post("/point", paymentHandler.CreatePointCharge)

		// GET /api/appointments/{id}/payments/orders/{orderID} - poll a
		// provider order and fold the result in
		r.Get("/orders/{orderID}", paymentHandler.PollOrder)

		// POST /api/appointments/{id}/payments/manual - cash and the like
		r.Post("/manual", paymentHandler.RecordManualPayment)

		// POST/DELETE /api/appointments/{id}/payments/waive
		r.Post("/waive", paymentHandler.Waive)
		r.Delete("/waive", paymentHandler.Unwaive)

		// POST /api/appointments/{id}/payments/recalculate
		r.Post("/recalculate", paymentHandler.Recalculate)
	})
}
