package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// GET /api/availability/slots - public, feeds the client booking flow
	r.Get("/api/availability/slots", availabilityHandler.GetSlots)

	// Block management is an admin concern.
	r.Route("/api/availability/blocks", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Staff, log))
		r.Use(middleware.Admin(log))

		// POST /api/availability/blocks - bulk create shift/manual blocks
		r.Post("/", availabilityHandler.BulkCreateBlocks)

		// DELETE /api/availability/blocks - bulk delete a month's blocks
		r.Delete("/", availabilityHandler.BulkDeleteBlocks)
	})
}
