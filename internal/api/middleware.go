package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orgball2608/piazza/internal/domain"
	"github.com/orgball2608/piazza/pkg/errors"
)

const identityKey = "identity"

func (h *Handler) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.Logger.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// requireAuth accepts "Authorization: Bearer <token>" and stores the verified identity.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			h.abort(c, errors.Unauthorized("authorization header missing"))
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" || token == "" {
			h.abort(c, errors.Unauthorized("invalid authorization header format"))
			return
		}

		identity, err := h.Auth.Verify(token)
		if err != nil {
			h.abort(c, err)
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// actor resolves the authenticated caller to the user acting on a post.
func (h *Handler) actor(c *gin.Context) (domain.Actor, error) {
	identity, ok := c.Get(identityKey)
	if !ok {
		return domain.Actor{}, errors.Unauthorized("not authenticated")
	}
	return h.Auth.Actor(c.Request.Context(), identity.(domain.Identity))
}

func (h *Handler) abort(c *gin.Context, err error) {
	h.fail(c, err)
	c.Abort()
}
