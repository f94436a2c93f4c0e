package authimpl

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/mock/gomock"

	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/internal/repositories/user"
	mock_user "github.com/orgball2608/piazza/internal/repositories/user/mocks"
	"github.com/orgball2608/piazza/pkg/config"
	"github.com/orgball2608/piazza/pkg/errors"
	"github.com/orgball2608/piazza/pkg/logger"
)

func newAuth(t *testing.T) (*AuthImpl, *mock_user.MockRepository, *clockwork.FakeClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_user.NewMockRepository(ctrl)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC))

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour

	return New(Opts{UserRepo: repo, Clock: clock, Logger: logger.Nop(), Config: cfg}), repo, clock
}

func TestRegisterThenVerify(t *testing.T) {
	a, repo, _ := newAuth(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u domain.User) (*domain.User, error) {
			if u.Email != "ann@example.com" {
				t.Errorf("email not normalised: %q", u.Email)
			}
			if u.PasswordHash == "" || u.PasswordHash == "hunter2" {
				t.Errorf("password not hashed")
			}
			u.ID = "user-1"
			return &u, nil
		})

	session, err := a.Register(context.Background(), "Ann", " Ann@Example.com ", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	identity, err := a.Verify(session.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != "user-1" || identity.Email != "ann@example.com" {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestRegisterValidationAndConflict(t *testing.T) {
	a, repo, _ := newAuth(t)

	if _, err := a.Register(context.Background(), "", "a@b.c", "pw"); !errors.IsValidation(err) {
		t.Fatalf("missing name: %v", err)
	}

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, user.ErrAlreadyExists)
	if _, err := a.Register(context.Background(), "Ann", "a@b.c", "pw"); !errors.IsConflict(err) {
		t.Fatalf("duplicate: %v", err)
	}
}

func TestLogin(t *testing.T) {
	a, repo, _ := newAuth(t)

	var stored domain.User
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u domain.User) (*domain.User, error) {
			u.ID = "user-1"
			stored = u
			return &u, nil
		})
	if _, err := a.Register(context.Background(), "Ann", "ann@example.com", "hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	repo.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").Return(&stored, nil).Times(2)
	repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, user.ErrNotFound)

	if _, err := a.Login(context.Background(), "ANN@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := a.Login(context.Background(), "ann@example.com", "wrong"); !errors.IsUnauthorized(err) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := a.Login(context.Background(), "nobody@example.com", "hunter2"); !errors.IsUnauthorized(err) {
		t.Fatalf("unknown user: %v", err)
	}
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	a, repo, clock := newAuth(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u domain.User) (*domain.User, error) {
			u.ID = "user-1"
			return &u, nil
		})
	session, err := a.Register(context.Background(), "Ann", "ann@example.com", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	other, _, _ := newAuth(t)
	other.Secret = []byte("another-secret")
	if _, err := other.Verify(session.Token); !errors.IsUnauthorized(err) {
		t.Fatalf("foreign secret: %v", err)
	}

	if _, err := a.Verify("not-a-token"); !errors.IsUnauthorized(err) {
		t.Fatalf("garbage: %v", err)
	}

	clock.Advance(time.Hour + time.Second)
	if _, err := a.Verify(session.Token); !errors.IsUnauthorized(err) {
		t.Fatalf("expired: %v", err)
	}
}

func TestActor(t *testing.T) {
	a, repo, _ := newAuth(t)

	repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(&domain.User{ID: "user-1", Name: "Ann"}, nil)
	repo.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, user.ErrNotFound)

	actor, err := a.Actor(context.Background(), domain.Identity{UserID: "user-1"})
	if err != nil || actor.Name != "Ann" {
		t.Fatalf("actor = %+v, err = %v", actor, err)
	}

	if _, err := a.Actor(context.Background(), domain.Identity{UserID: "gone"}); !errors.IsUnauthorized(err) {
		t.Fatalf("deleted user: %v", err)
	}
}
