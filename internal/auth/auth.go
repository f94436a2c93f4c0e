package auth

import (
	"context"

	"github.com/orgball2608/piazza/internal/domain"
)

// Session is returned after a successful register or login.
type Session struct {
	Token string
	User  *domain.User
}

//go:generate go run go.uber.org/mock/mockgen -source=auth.go -destination=mocks/mock.go

type Client interface {
	Register(ctx context.Context, name, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Verify checks a bearer token and returns the identity it carries.
	Verify(token string) (*domain.Identity, error)
	// Actor resolves a verified identity to the user acting on posts.
	Actor(ctx context.Context, identity domain.Identity) (domain.Actor, error)
}
