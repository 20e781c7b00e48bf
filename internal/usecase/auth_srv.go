package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo *repository.Repository
	cfg  *utils.Config
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, cfg *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		cfg:  cfg,
		log:  log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	staff, err := s.repo.Staff.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if staff == nil || !staff.IsActive || !utils.CheckPassword(staff.PasswordHash, req.Password) {
		s.log.Warn("Login rejected", zap.String("username", req.Username))
		return nil, fmt.Errorf("unauthorized: invalid credentials")
	}

	expiryHours := s.cfg.Session.ExpiryHours
	if expiryHours <= 0 {
		expiryHours = 24
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		StaffID:    staff.ID,
		Token:      uuid.New(),
		ExpiresAt:  now.Add(time.Duration(expiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info("Staff logged in",
		zap.String("staff_id", staff.ID.String()),
		zap.String("role", string(staff.Role)),
	)

	return &response.LoginResponse{
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
		Staff: response.StaffResponse{
			ID:       staff.ID.String(),
			Username: staff.Username,
			Email:    staff.Email,
			Role:     string(staff.Role),
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("unauthorized: missing session token")
	}
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.log.Info("Session revoked")
	return nil
}
