package post

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/piazza/internal/domain"
)

var (
	ErrNotFound       = errors.New("post not found")
	ErrCannotCreate   = errors.New("error create post")
	ErrCommentsEdited = errors.New("comments are append-only")
)

type Order int

const (
	OrderCreatedDesc Order = iota
	OrderCreatedAsc
	OrderExpiresDesc
)

// Filter selects posts by derived status relative to Now, optionally by topic.
type Filter struct {
	Status domain.Status
	Topic  domain.Topic
	Now    time.Time
	Order  Order
}

// MutateFunc decides and applies an engagement change to a loaded post.
// Returning an error aborts the update without writing anything.
type MutateFunc func(post *domain.Post) error

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go

type Repository interface {
	// Create stores a new post, assigning its ID and timestamps.
	Create(ctx context.Context, post domain.Post) (*domain.Post, error)

	// GetByID loads a post with its reactions and comments.
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// List returns posts matching filter, fully loaded, in the requested order.
	List(ctx context.Context, filter Filter) ([]*domain.Post, error)

	// Update runs fn against the post while holding that post's lock and persists the result.
	Update(ctx context.Context, id string, fn MutateFunc) (*domain.Post, error)

	// DeleteExpiredBefore removes posts that expired before cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
