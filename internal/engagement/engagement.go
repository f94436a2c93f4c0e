package engagement

import (
	"context"

	"github.com/orgball2608/piazza/internal/domain"
)

// Draft is the caller's input for a new post. A non-positive ExpiresInMinutes
// selects the default lifetime.
type Draft struct {
	Title            string
	Body             string
	Topics           []string
	ExpiresInMinutes float64
}

//go:generate go run go.uber.org/mock/mockgen -source=engagement.go -destination=mocks/mock.go

type Client interface {
	Create(ctx context.Context, actor domain.Actor, draft Draft) (*domain.PostView, error)
	Like(ctx context.Context, actor domain.Actor, postID string) (domain.ReactionCounts, error)
	Dislike(ctx context.Context, actor domain.Actor, postID string) (domain.ReactionCounts, error)
	Comment(ctx context.Context, actor domain.Actor, postID string, text string) ([]domain.Comment, error)
}
