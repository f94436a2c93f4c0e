package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/internal/engagement"
	"github.com/orgball2608/piazza/pkg/errors"
)

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.fail(c, errors.Validation("invalid request body"))
		return false
	}
	return true
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSession("User registered successfully", session))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toSession("Login successful", session))
}

func (h *Handler) listLive(c *gin.Context) {
	h.list(c, domain.StatusLive)
}

func (h *Handler) listExpired(c *gin.Context) {
	h.list(c, domain.StatusExpired)
}

func (h *Handler) list(c *gin.Context, status domain.Status) {
	topic, err := domain.ParseOptionalTopic(c.Query("topic"))
	if err != nil {
		h.fail(c, err)
		return
	}

	views, err := h.Query.List(c.Request.Context(), status, topic)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": toPosts(views)})
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if !h.bind(c, &req) {
		return
	}

	actor, err := h.actor(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	view, err := h.Engagement.Create(c.Request.Context(), actor, engagement.Draft{
		Title:            req.Title,
		Body:             req.Body,
		Topics:           req.Topics,
		ExpiresInMinutes: minutes(req.ExpiresInMinutes),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created", "post": toPost(*view)})
}

func (h *Handler) browseTopic(c *gin.Context) {
	topic, err := domain.ParseTopic(c.Param("topic"))
	if err != nil {
		h.fail(c, err)
		return
	}

	summaries, err := h.Query.Browse(c.Request.Context(), topic)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topic": topic,
		"count": len(summaries),
		"posts": toSummaries(summaries),
	})
}

func (h *Handler) topInterest(c *gin.Context) {
	topic, err := domain.ParseOptionalTopic(c.Query("topic"))
	if err != nil {
		h.fail(c, err)
		return
	}

	ranked, err := h.Query.TopInterest(c.Request.Context(), topic)
	if err != nil {
		h.fail(c, err)
		return
	}

	var topicValue *domain.Topic
	if topic != "" {
		topicValue = &topic
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Top interest post found",
		"topic":         topicValue,
		"interestScore": ranked.InterestScore,
		"post":          toPost(ranked.View),
	})
}

func (h *Handler) getPost(c *gin.Context) {
	view, err := h.Query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":            toPost(*view),
		"timeLeftSeconds": view.TimeLeftSeconds,
		"status":          view.Status,
	})
}

func (h *Handler) likePost(c *gin.Context) {
	h.react(c, h.Engagement.Like, "Like registered")
}

func (h *Handler) dislikePost(c *gin.Context) {
	h.react(c, h.Engagement.Dislike, "Dislike registered")
}

type reactFunc func(ctx context.Context, actor domain.Actor, postID string) (domain.ReactionCounts, error)

func (h *Handler) react(c *gin.Context, fn reactFunc, message string) {
	actor, err := h.actor(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	counts, err := fn(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"likes":    counts.Likes,
		"dislikes": counts.Dislikes,
	})
}

func (h *Handler) commentPost(c *gin.Context) {
	var req commentRequest
	if !h.bind(c, &req) {
		return
	}

	actor, err := h.actor(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	comments, err := h.Engagement.Comment(c.Request.Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comments": toComments(comments)})
}
