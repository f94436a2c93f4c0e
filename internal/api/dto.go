package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/orgball2608/piazza/internal/auth"
	"github.com/orgball2608/piazza/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createPostRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Topics []string `json:"topics"`
	// Accepts a number or a numeric string. Anything else selects the default lifetime.
	ExpiresInMinutes any `json:"expiresInMinutes"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type reactionResponse struct {
	User      string    `json:"user"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type commentResponse struct {
	User      string    `json:"user"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type postResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	Topics    []domain.Topic     `json:"topics"`
	Owner     string             `json:"owner"`
	OwnerName string             `json:"ownerName"`
	Status    domain.Status      `json:"status"`
	ExpiresAt time.Time          `json:"expiresAt"`
	Likes     []reactionResponse `json:"likes"`
	Dislikes  []reactionResponse `json:"dislikes"`
	Comments  []commentResponse  `json:"comments"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type summaryResponse struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Body            string        `json:"body"`
	OwnerName       string        `json:"ownerName"`
	Status          domain.Status `json:"status"`
	Likes           int           `json:"likes"`
	Dislikes        int           `json:"dislikes"`
	Comments        int           `json:"comments"`
	TimeLeftSeconds int64         `json:"timeLeftSeconds"`
}

func toSession(message string, s *auth.Session) sessionResponse {
	return sessionResponse{
		Message: message,
		Token:   s.Token,
		User: userResponse{
			ID:    s.User.ID,
			Name:  s.User.Name,
			Email: s.User.Email,
		},
	}
}

func toReactions(rs []domain.Reaction) []reactionResponse {
	return lo.Map(rs, func(r domain.Reaction, _ int) reactionResponse {
		return reactionResponse{User: r.User, Name: r.Name, CreatedAt: r.CreatedAt}
	})
}

func toComments(cs []domain.Comment) []commentResponse {
	return lo.Map(cs, func(c domain.Comment, _ int) commentResponse {
		return commentResponse{User: c.User, Name: c.Name, Text: c.Text, CreatedAt: c.CreatedAt}
	})
}

func toPost(v domain.PostView) postResponse {
	p := v.Post
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		Topics:    p.Topics,
		Owner:     p.Owner,
		OwnerName: p.OwnerName,
		Status:    v.Status,
		ExpiresAt: p.ExpiresAt,
		Likes:     toReactions(p.Likes),
		Dislikes:  toReactions(p.Dislikes),
		Comments:  toComments(p.Comments),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPosts(vs []domain.PostView) []postResponse {
	return lo.Map(vs, func(v domain.PostView, _ int) postResponse {
		return toPost(v)
	})
}

func toSummaries(ss []domain.PostSummary) []summaryResponse {
	return lo.Map(ss, func(s domain.PostSummary, _ int) summaryResponse {
		return summaryResponse(s)
	})
}

// minutes coerces the loosely typed expiresInMinutes field. Zero means "use the default".
func minutes(v any) float64 {
	switch m := v.(type) {
	case float64:
		return m
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
