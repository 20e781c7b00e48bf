package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (AuthService, *repository.Repository, *entity.Staff) {
	t.Helper()

	repo := newTestRepo()

	hash, err := utils.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	staff := &entity.Staff{
		Base:         entity.Base{ID: uuid.New()},
		TenantID:     uuid.New(),
		Username:     "marina",
		Email:        "marina@example.com",
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	repo.Staff.(*fakeStaffRepo).staff[staff.ID] = staff

	cfg := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 12}}
	return NewAuthService(repo, cfg, zap.NewNop()), repo, staff
}

func TestLoginIssuesSession(t *testing.T) {
	t.Parallel()

	auth, repo, staff := newAuthFixture(t)

	res, err := auth.Login(context.Background(), &request.LoginRequest{
		Username: "marina",
		Password: "s3cret-pass",
	}, "test-agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if res.Staff.Username != staff.Username || res.Staff.Role != string(entity.RoleAdmin) {
		t.Errorf("staff = %+v", res.Staff)
	}
	if res.Token == "" {
		t.Fatal("token missing")
	}
	if remaining := time.Until(res.ExpiresAt); remaining < 11*time.Hour || remaining > 13*time.Hour {
		t.Errorf("expiry %v from now, want about 12h", remaining)
	}

	session, err := repo.Session.FindValidSession(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("FindValidSession: %v", err)
	}
	if session == nil || session.StaffID != staff.ID {
		t.Fatalf("session = %+v", session)
	}
	if session.UserAgent == nil || *session.UserAgent != "test-agent" {
		t.Errorf("user agent = %v", session.UserAgent)
	}
}

func TestLoginRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		username string
		password string
		mutate   func(st *entity.Staff)
	}{
		{"wrong password", "marina", "not-the-pass", nil},
		{"unknown user", "ghost", "s3cret-pass", nil},
		{"inactive user", "marina", "s3cret-pass", func(st *entity.Staff) { st.IsActive = false }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			auth, _, staff := newAuthFixture(t)
			if tc.mutate != nil {
				tc.mutate(staff)
			}

			_, err := auth.Login(context.Background(), &request.LoginRequest{
				Username: tc.username,
				Password: tc.password,
			}, "", "")
			if err == nil || !strings.Contains(err.Error(), "unauthorized") {
				t.Errorf("error = %v, want unauthorized", err)
			}
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	auth, repo, _ := newAuthFixture(t)

	res, err := auth.Login(context.Background(), &request.LoginRequest{
		Username: "marina",
		Password: "s3cret-pass",
	}, "", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := auth.Logout(context.Background(), res.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	session, err := repo.Session.FindValidSession(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("FindValidSession: %v", err)
	}
	if session != nil {
		t.Error("session still valid after logout")
	}

	if err := auth.Logout(context.Background(), ""); err == nil || !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("empty token logout error = %v", err)
	}
}
