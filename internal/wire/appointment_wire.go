package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAppointment(
	r chi.Router,
	appointmentHandler *adaptor.AppointmentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/appointments", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Staff, log))

		// POST /api/appointments - book a slot
		r.Post("/", appointmentHandler.Create)

		// GET /api/appointments - paginated agenda
		r.Get("/", appointmentHandler.List)

		// GET /api/appointments/{id} - detail with checkout and payments
		r.Get("/{id}", appointmentHandler.GetByID)

		// PUT /api/appointments/{id}/reschedule - move to a new slot
		r.Put("/{id}/reschedule", appointmentHandler.Reschedule)

		// PUT /api/appointments/{id}/confirm
		r.Put("/{id}/confirm", appointmentHandler.Confirm)

		// PUT /api/appointments/{id}/cancel
		r.Put("/{id}/cancel", appointmentHandler.Cancel)

		// PUT /api/appointments/{id}/no-show
		r.Put("/{id}/no-show", appointmentHandler.MarkNoShow)
	})
}
