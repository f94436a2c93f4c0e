package user

import (
	"context"
	"errors"

	"github.com/orgball2608/piazza/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("user already exists")
	ErrNotFound      = errors.New("user not found")
)

//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=mocks/mock.go

type Repository interface {
	// Create stores a user, assigning its ID and creation time.
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail expects an already normalised address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
