package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/appointments/{id}/checkout", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Staff, log))

		// GET /api/appointments/{id}/checkout
		r.Get("/", checkoutHandler.Get)

		// PUT /api/appointments/{id}/checkout/items - replace line items
		r.Put("/items", checkoutHandler.SetItems)

		// PUT /api/appointments/{id}/checkout/discount
		r.Put("/discount", checkoutHandler.ApplyDiscount)

		// DELETE /api/appointments/{id}/checkout/discount
		r.Delete("/discount", checkoutHandler.RemoveDiscount)

		// POST /api/appointments/{id}/checkout/confirm - freeze the charge
		r.Post("/confirm", checkoutHandler.Confirm)
	})
}
