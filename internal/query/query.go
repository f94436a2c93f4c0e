package query

import (
	"context"

	"github.com/orgball2608/piazza/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=query.go -destination=mocks/mock.go

// Client answers read-only questions about posts. Status is derived from the clock at
// each call.
type Client interface {
	// List returns posts in the given status, newest first for Live and most recently
	// expired first for Expired. An empty topic matches every post.
	List(ctx context.Context, status domain.Status, topic domain.Topic) ([]domain.PostView, error)

	// Browse returns the live posts of a topic, oldest first.
	Browse(ctx context.Context, topic domain.Topic) ([]domain.PostSummary, error)

	// TopInterest returns the live post with the most likes, dislikes and comments combined.
	TopInterest(ctx context.Context, topic domain.Topic) (*domain.RankedPost, error)

	Get(ctx context.Context, id string) (*domain.PostView, error)
}
