package queryimpl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/mock/gomock"

	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/internal/repositories/post"
	mock_post "github.com/orgball2608/piazza/internal/repositories/post/mocks"
	"github.com/orgball2608/piazza/pkg/errors"
	"github.com/orgball2608/piazza/pkg/logger"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newQuery(t *testing.T) (*QueryImpl, *mock_post.MockRepository, *clockwork.FakeClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_post.NewMockRepository(ctrl)
	clock := clockwork.NewFakeClockAt(now)

	return New(Opts{PostRepo: repo, Clock: clock, Logger: logger.Nop()}), repo, clock
}

func reactions(n int) []domain.Reaction {
	out := make([]domain.Reaction, n)
	for i := range out {
		out[i] = domain.Reaction{User: fmt.Sprintf("u%d", i)}
	}
	return out
}

func comments(n int) []domain.Comment {
	out := make([]domain.Comment, n)
	for i := range out {
		out[i] = domain.Comment{User: fmt.Sprintf("u%d", i), Text: "hi"}
	}
	return out
}

func techPost(id string, likes, dislikes, comm int) *domain.Post {
	return &domain.Post{
		ID:        id,
		Topics:    []domain.Topic{domain.TopicTech},
		ExpiresAt: now.Add(10 * time.Minute),
		Likes:     reactions(likes),
		Dislikes:  reactions(dislikes),
		Comments:  comments(comm),
	}
}

func TestTopInterestPicksHighestScore(t *testing.T) {
	q, repo, _ := newQuery(t)

	a := techPost("A", 2, 0, 0)
	b := techPost("B", 1, 1, 1)
	repo.EXPECT().List(gomock.Any(), post.Filter{
		Status: domain.StatusLive,
		Topic:  domain.TopicTech,
		Now:    now,
		Order:  post.OrderCreatedAsc,
	}).Return([]*domain.Post{a, b}, nil)

	top, err := q.TopInterest(context.Background(), domain.TopicTech)
	if err != nil {
		t.Fatalf("TopInterest: %v", err)
	}
	if top.View.Post.ID != "B" || top.InterestScore != 3 {
		t.Fatalf("top = %s (%d), want B (3)", top.View.Post.ID, top.InterestScore)
	}
	if top.View.Status != domain.StatusLive {
		t.Fatalf("status = %s", top.View.Status)
	}
}

func TestTopInterestTieGoesToFirstScanned(t *testing.T) {
	q, repo, _ := newQuery(t)

	first := techPost("first", 1, 1, 0)
	second := techPost("second", 0, 0, 2)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*domain.Post{first, second}, nil).Times(3)

	for i := 0; i < 3; i++ {
		top, err := q.TopInterest(context.Background(), domain.TopicTech)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if top.View.Post.ID != "first" || top.InterestScore != 2 {
			t.Fatalf("call %d: top = %s", i, top.View.Post.ID)
		}
	}
}

func TestTopInterestWithoutPostsIsNotFound(t *testing.T) {
	q, repo, _ := newQuery(t)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*domain.Post{}, nil)

	_, err := q.TopInterest(context.Background(), domain.TopicHealth)
	if !errors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if errors.IsStoreFailure(err) {
		t.Fatal("empty result reported as store failure")
	}
}

func TestTopInterestAnyTopic(t *testing.T) {
	q, repo, _ := newQuery(t)
	repo.EXPECT().List(gomock.Any(), post.Filter{
		Status: domain.StatusLive,
		Now:    now,
		Order:  post.OrderCreatedAsc,
	}).Return([]*domain.Post{techPost("only", 0, 0, 0)}, nil)

	top, err := q.TopInterest(context.Background(), "")
	if err != nil {
		t.Fatalf("TopInterest: %v", err)
	}
	if top.InterestScore != 0 || top.View.Post.ID != "only" {
		t.Fatalf("top = %+v", top)
	}
}

func TestListOrdering(t *testing.T) {
	q, repo, _ := newQuery(t)

	repo.EXPECT().List(gomock.Any(), post.Filter{
		Status: domain.StatusLive,
		Topic:  domain.TopicSport,
		Now:    now,
		Order:  post.OrderCreatedDesc,
	}).Return([]*domain.Post{techPost("live", 0, 0, 0)}, nil)

	expired := techPost("gone", 0, 0, 0)
	expired.ExpiresAt = now.Add(-time.Minute)
	repo.EXPECT().List(gomock.Any(), post.Filter{
		Status: domain.StatusExpired,
		Now:    now,
		Order:  post.OrderExpiresDesc,
	}).Return([]*domain.Post{expired}, nil)

	live, err := q.List(context.Background(), domain.StatusLive, domain.TopicSport)
	if err != nil {
		t.Fatalf("List live: %v", err)
	}
	if len(live) != 1 || live[0].Status != domain.StatusLive || live[0].TimeLeftSeconds != 600 {
		t.Fatalf("live = %+v", live)
	}

	gone, err := q.List(context.Background(), domain.StatusExpired, "")
	if err != nil {
		t.Fatalf("List expired: %v", err)
	}
	if len(gone) != 1 || gone[0].Status != domain.StatusExpired || gone[0].TimeLeftSeconds != 0 {
		t.Fatalf("expired = %+v", gone)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	q, _, _ := newQuery(t)

	if _, err := q.List(context.Background(), domain.Status("Pending"), ""); !errors.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
}

func TestBrowseSummaries(t *testing.T) {
	q, repo, _ := newQuery(t)

	p := techPost("p1", 2, 1, 4)
	p.Title = "Title"
	p.OwnerName = "Olivia"
	p.ExpiresAt = now.Add(90*time.Second + 500*time.Millisecond)
	repo.EXPECT().List(gomock.Any(), post.Filter{
		Status: domain.StatusLive,
		Topic:  domain.TopicTech,
		Now:    now,
		Order:  post.OrderCreatedAsc,
	}).Return([]*domain.Post{p}, nil)

	summaries, err := q.Browse(context.Background(), domain.TopicTech)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}

	want := domain.PostSummary{
		ID:              "p1",
		Title:           "Title",
		OwnerName:       "Olivia",
		Status:          domain.StatusLive,
		Likes:           2,
		Dislikes:        1,
		Comments:        4,
		TimeLeftSeconds: 90,
	}
	if len(summaries) != 1 || summaries[0] != want {
		t.Fatalf("summaries = %+v", summaries)
	}

	if _, err := q.Browse(context.Background(), ""); !errors.IsValidation(err) {
		t.Fatalf("browse without topic: %v", err)
	}
}

func TestGetDerivesStatusAtReadTime(t *testing.T) {
	q, repo, clock := newQuery(t)

	p := techPost("p1", 0, 0, 0)
	p.ExpiresAt = now.Add(30 * time.Second)
	repo.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil).Times(2)

	view, err := q.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.Status != domain.StatusLive || view.TimeLeftSeconds != 30 {
		t.Fatalf("before expiry: %+v", view)
	}

	clock.Advance(30 * time.Second)

	view, err = q.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.Status != domain.StatusExpired || view.TimeLeftSeconds != 0 {
		t.Fatalf("after expiry: %+v", view)
	}
}

func TestGetErrors(t *testing.T) {
	q, repo, _ := newQuery(t)
	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, post.ErrNotFound)
	repo.EXPECT().GetByID(gomock.Any(), "broken").Return(nil, fmt.Errorf("timeout"))

	if _, err := q.Get(context.Background(), "missing"); !errors.IsNotFound(err) {
		t.Fatalf("missing: %v", err)
	}
	if _, err := q.Get(context.Background(), "broken"); !errors.IsStoreFailure(err) {
		t.Fatalf("broken: %v", err)
	}
}
