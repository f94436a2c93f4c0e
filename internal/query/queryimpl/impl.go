package queryimpl

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/internal/query"
	"github.com/orgball2608/piazza/internal/repositories/post"
	"github.com/orgball2608/piazza/pkg/errors"
	"github.com/orgball2608/piazza/pkg/logger"
)

type Opts struct {
	fx.In

	PostRepo post.Repository
	Clock    clockwork.Clock
	Logger   logger.Logger
}

type QueryImpl struct {
	PostRepo post.Repository
	Clock    clockwork.Clock
	Logger   logger.Logger
}

func New(opts Opts) *QueryImpl {
	return &QueryImpl{
		PostRepo: opts.PostRepo,
		Clock:    opts.Clock,
		Logger:   opts.Logger.WithComponent("Query"),
	}
}

var _ query.Client = (*QueryImpl)(nil)

func (q *QueryImpl) List(ctx context.Context, status domain.Status, topic domain.Topic) ([]domain.PostView, error) {
	order := post.OrderCreatedDesc
	switch status {
	case domain.StatusLive:
	case domain.StatusExpired:
		order = post.OrderExpiresDesc
	default:
		return nil, errors.Validation("unknown status " + string(status))
	}

	now := q.Clock.Now()
	posts, err := q.PostRepo.List(ctx, post.Filter{
		Status: status,
		Topic:  topic,
		Now:    now,
		Order:  order,
	})
	if err != nil {
		return nil, q.storeFailure(err, "server error fetching posts")
	}

	return lo.Map(posts, func(p *domain.Post, _ int) domain.PostView {
		return domain.NewPostView(p, now)
	}), nil
}

func (q *QueryImpl) Browse(ctx context.Context, topic domain.Topic) ([]domain.PostSummary, error) {
	if topic == "" {
		return nil, errors.Validation("topic is required")
	}

	now := q.Clock.Now()
	posts, err := q.PostRepo.List(ctx, post.Filter{
		Status: domain.StatusLive,
		Topic:  topic,
		Now:    now,
		Order:  post.OrderCreatedAsc,
	})
	if err != nil {
		return nil, q.storeFailure(err, "server error browsing posts")
	}

	return lo.Map(posts, func(p *domain.Post, _ int) domain.PostSummary {
		return domain.NewPostSummary(p, now)
	}), nil
}

// TopInterest scans live posts oldest first and keeps the first post reaching the
// highest score, so ties go to the earliest post.
func (q *QueryImpl) TopInterest(ctx context.Context, topic domain.Topic) (*domain.RankedPost, error) {
	now := q.Clock.Now()
	posts, err := q.PostRepo.List(ctx, post.Filter{
		Status: domain.StatusLive,
		Topic:  topic,
		Now:    now,
		Order:  post.OrderCreatedAsc,
	})
	if err != nil {
		return nil, q.storeFailure(err, "server error getting post")
	}

	if len(posts) == 0 {
		return nil, errors.NotFound("no active posts found for this topic")
	}

	top := lo.MaxBy(posts, func(candidate, best *domain.Post) bool {
		return candidate.InterestScore() > best.InterestScore()
	})

	return &domain.RankedPost{
		View:          domain.NewPostView(top, now),
		InterestScore: top.InterestScore(),
	}, nil
}

func (q *QueryImpl) Get(ctx context.Context, id string) (*domain.PostView, error) {
	p, err := q.PostRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, errors.NotFound("post not found")
		}
		return nil, q.storeFailure(err, "server error getting post")
	}

	view := domain.NewPostView(p, q.Clock.Now())
	return &view, nil
}

func (q *QueryImpl) storeFailure(err error, message string) error {
	q.Logger.Error("Post query failed", "error", err)
	return errors.StoreFailure(err, message)
}
