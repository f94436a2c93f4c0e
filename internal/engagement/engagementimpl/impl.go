package engagementimpl

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"

	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/internal/engagement"
	"github.com/orgball2608/piazza/internal/repositories/post"
	"github.com/orgball2608/piazza/pkg/config"
	"github.com/orgball2608/piazza/pkg/errors"
	"github.com/orgball2608/piazza/pkg/logger"
)

// MaxLifetime bounds how far in the future a post may expire.
const MaxLifetime = 365 * 24 * time.Hour

type Opts struct {
	fx.In

	PostRepo post.Repository
	Clock    clockwork.Clock
	Logger   logger.Logger
	Config   *config.Config
}

type EngineImpl struct {
	PostRepo        post.Repository
	Clock           clockwork.Clock
	Logger          logger.Logger
	DefaultLifetime time.Duration
}

func New(opts Opts) *EngineImpl {
	lifetime := domain.DefaultLifetime
	if opts.Config != nil && opts.Config.Post.DefaultLifetime > 0 {
		lifetime = opts.Config.Post.DefaultLifetime
	}

	return &EngineImpl{
		PostRepo:        opts.PostRepo,
		Clock:           opts.Clock,
		Logger:          opts.Logger.WithComponent("Engagement"),
		DefaultLifetime: lifetime,
	}
}

var _ engagement.Client = (*EngineImpl)(nil)

func (e *EngineImpl) Create(ctx context.Context, actor domain.Actor, draft engagement.Draft) (*domain.PostView, error) {
	title := strings.TrimSpace(draft.Title)
	body := strings.TrimSpace(draft.Body)
	if title == "" || body == "" {
		return nil, errors.Validation("title, body and at least one topic are required")
	}

	topics, err := domain.ParseTopics(draft.Topics)
	if err != nil {
		return nil, err
	}

	lifetime, err := e.lifetime(draft.ExpiresInMinutes)
	if err != nil {
		return nil, err
	}

	created, err := e.PostRepo.Create(ctx, domain.Post{
		Title:     title,
		Body:      body,
		Topics:    topics,
		Owner:     actor.ID,
		OwnerName: actor.Name,
		ExpiresAt: e.Clock.Now().Add(lifetime),
	})
	if err != nil {
		e.Logger.Error("Failed to create post", "owner", actor.ID, "error", err)
		return nil, errors.StoreFailure(err, "server error creating post")
	}

	e.Logger.Info("Post created", "post_id", created.ID, "owner", actor.ID, "expires_at", created.ExpiresAt)

	view := domain.NewPostView(created, e.Clock.Now())
	return &view, nil
}

func (e *EngineImpl) lifetime(minutes float64) (time.Duration, error) {
	if math.IsNaN(minutes) || minutes <= 0 {
		return e.DefaultLifetime, nil
	}
	if minutes > MaxLifetime.Minutes() {
		return 0, errors.Validation("expiresInMinutes exceeds the maximum lifetime")
	}
	return time.Duration(minutes * float64(time.Minute)), nil
}

func (e *EngineImpl) Like(ctx context.Context, actor domain.Actor, postID string) (domain.ReactionCounts, error) {
	return e.react(ctx, actor, postID, like)
}

func (e *EngineImpl) Dislike(ctx context.Context, actor domain.Actor, postID string) (domain.ReactionCounts, error) {
	return e.react(ctx, actor, postID, dislike)
}

func (e *EngineImpl) react(ctx context.Context, actor domain.Actor, postID string, s sentiment) (domain.ReactionCounts, error) {
	updated, err := e.PostRepo.Update(ctx, postID, func(p *domain.Post) error {
		now := e.Clock.Now()
		if p.IsExpired(now) {
			return errors.PostExpired("post is expired; cannot " + s.String())
		}
		if p.Owner == actor.ID {
			return errors.SelfReaction("post owner cannot " + s.String() + " their own post")
		}
		applyReaction(p, actor, s, now)
		return nil
	})
	if err != nil {
		return domain.ReactionCounts{}, e.translate(err, postID, s.String())
	}

	return updated.Counts(), nil
}

func (e *EngineImpl) Comment(ctx context.Context, actor domain.Actor, postID string, text string) ([]domain.Comment, error) {
	if text == "" {
		return nil, errors.Validation("comment text is required")
	}

	updated, err := e.PostRepo.Update(ctx, postID, func(p *domain.Post) error {
		now := e.Clock.Now()
		if p.IsExpired(now) {
			return errors.PostExpired("post is expired; cannot comment")
		}
		p.Comments = append(p.Comments, domain.Comment{
			User:      actor.ID,
			Name:      actor.Name,
			Text:      text,
			CreatedAt: now,
		})
		return nil
	})
	if err != nil {
		return nil, e.translate(err, postID, "comment")
	}

	return updated.Comments, nil
}

// translate maps store errors onto the error taxonomy. Decisions made inside the
// update already carry a code and pass through unchanged.
func (e *EngineImpl) translate(err error, postID string, action string) error {
	switch {
	case errors.Is(err, post.ErrNotFound):
		return errors.NotFound("post not found")
	case errors.IsDomain(err):
		return err
	default:
		e.Logger.Error("Engagement update failed", "post_id", postID, "action", action, "error", err)
		return errors.StoreFailure(err, "server error on "+action)
	}
}
