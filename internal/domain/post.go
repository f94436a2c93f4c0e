package domain

import (
	"time"

	"github.com/samber/lo"
)

type Status string

const (
	StatusLive    Status = "Live"
	StatusExpired Status = "Expired"
)

// DefaultLifetime applies when a post is created without a usable lifetime.
const DefaultLifetime = 5 * time.Minute

type Reaction struct {
	User      string
	Name      string
	CreatedAt time.Time
}

type Comment struct {
	User      string
	Name      string
	Text      string
	CreatedAt time.Time
}

// Post is a stored post. Its status is never stored; use Status with the current time.
type Post struct {
	ID        string
	Title     string
	Body      string
	Topics    []Topic
	Owner     string
	OwnerName string
	ExpiresAt time.Time
	Likes     []Reaction
	Dislikes  []Reaction
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Post) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

func (p *Post) Status(now time.Time) Status {
	if p.IsExpired(now) {
		return StatusExpired
	}
	return StatusLive
}

// TimeLeftSeconds is the whole number of seconds until expiry, never negative.
func (p *Post) TimeLeftSeconds(now time.Time) int64 {
	left := p.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int64(left / time.Second)
}

func (p *Post) HasTopic(topic Topic) bool {
	return lo.Contains(p.Topics, topic)
}

// InterestScore counts every engagement the post received.
func (p *Post) InterestScore() int {
	return len(p.Likes) + len(p.Dislikes) + len(p.Comments)
}

func (p *Post) Counts() ReactionCounts {
	return ReactionCounts{Likes: len(p.Likes), Dislikes: len(p.Dislikes)}
}

type ReactionCounts struct {
	Likes    int
	Dislikes int
}

// PostView is a post paired with the status derived at read time.
type PostView struct {
	Post            *Post
	Status          Status
	TimeLeftSeconds int64
}

func NewPostView(p *Post, now time.Time) PostView {
	return PostView{
		Post:            p,
		Status:          p.Status(now),
		TimeLeftSeconds: p.TimeLeftSeconds(now),
	}
}

// PostSummary is the browse-queue projection of a live post.
type PostSummary struct {
	ID              string
	Title           string
	Body            string
	OwnerName       string
	Status          Status
	Likes           int
	Dislikes        int
	Comments        int
	TimeLeftSeconds int64
}

func NewPostSummary(p *Post, now time.Time) PostSummary {
	return PostSummary{
		ID:              p.ID,
		Title:           p.Title,
		Body:            p.Body,
		OwnerName:       p.OwnerName,
		Status:          p.Status(now),
		Likes:           len(p.Likes),
		Dislikes:        len(p.Dislikes),
		Comments:        len(p.Comments),
		TimeLeftSeconds: p.TimeLeftSeconds(now),
	}
}

type RankedPost struct {
	View          PostView
	InterestScore int
}
