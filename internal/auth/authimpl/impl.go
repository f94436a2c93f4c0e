package authimpl

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgball2608/piazza/internal/auth"
	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/internal/repositories/user"
	"github.com/orgball2608/piazza/pkg/config"
	"github.com/orgball2608/piazza/pkg/errors"
	"github.com/orgball2608/piazza/pkg/logger"
)

const passwordCost = 10

type Opts struct {
	fx.In

	UserRepo user.Repository
	Clock    clockwork.Clock
	Logger   logger.Logger
	Config   *config.Config
}

type AuthImpl struct {
	UserRepo user.Repository
	Clock    clockwork.Clock
	Logger   logger.Logger
	Secret   []byte
	TokenTTL time.Duration
}

func New(opts Opts) *AuthImpl {
	return &AuthImpl{
		UserRepo: opts.UserRepo,
		Clock:    opts.Clock,
		Logger:   opts.Logger.WithComponent("Auth"),
		Secret:   []byte(opts.Config.Auth.JWTSecret),
		TokenTTL: opts.Config.Auth.TokenTTL,
	}
}

var _ auth.Client = (*AuthImpl)(nil)

type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (a *AuthImpl) Register(ctx context.Context, name, email, password string) (*auth.Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, errors.Validation("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, errors.Validation("password cannot be used")
	}

	created, err := a.UserRepo.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return nil, errors.Conflict("user already exists")
		}
		a.Logger.Error("Failed to register user", "error", err)
		return nil, errors.StoreFailure(err, "server error during registration")
	}

	a.Logger.Info("User registered", "user_id", created.ID)
	return a.session(created)
}

func (a *AuthImpl) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.Validation("email and password are required")
	}

	found, err := a.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errors.Unauthorized("invalid credentials")
		}
		a.Logger.Error("Failed to load user for login", "error", err)
		return nil, errors.StoreFailure(err, "server error during login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("invalid credentials")
	}

	return a.session(found)
}

func (a *AuthImpl) Verify(token string) (*domain.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return a.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.Clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		a.Logger.Debug("Token rejected", "error", err)
		return nil, errors.Unauthorized("invalid or expired token")
	}
	if c.UserID == "" {
		return nil, errors.Unauthorized("invalid or expired token")
	}

	return &domain.Identity{UserID: c.UserID, Email: c.Email}, nil
}

func (a *AuthImpl) Actor(ctx context.Context, identity domain.Identity) (domain.Actor, error) {
	found, err := a.UserRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return domain.Actor{}, errors.Unauthorized("user not found")
		}
		return domain.Actor{}, errors.StoreFailure(err, "server error loading user")
	}
	return found.Actor(), nil
}

func (a *AuthImpl) session(u *domain.User) (*auth.Session, error) {
	now := a.Clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.TokenTTL)),
		},
	})

	signed, err := token.SignedString(a.Secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	return &auth.Session{Token: signed, User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
