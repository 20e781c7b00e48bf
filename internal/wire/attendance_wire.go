package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAttendance(
	r chi.Router,
	attendanceHandler *adaptor.AttendanceHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/appointments/{id}/timer", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Staff, log))

		// GET /api/appointments/{id}/timer - current elapsed/planned
		r.Get("/", attendanceHandler.Get)

		// POST /api/appointments/{id}/timer/start
		r.Post("/start", attendanceHandler.Start)

		// POST /api/appointments/{id}/timer/pause
		r.Post("/pause", attendanceHandler.Pause)

		// POST /api/appointments/{id}/timer/resume
		r.Post("/resume", attendanceHandler.Resume)

		// POST /api/appointments/{id}/timer/finish
		r.Post("/finish", attendanceHandler.Finish)
	})
}
