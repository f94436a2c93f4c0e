package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.logRequests())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Piazza API is running"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", h.register)
	authRoutes.POST("/login", h.login)

	posts := api.Group("/posts")
	posts.GET("", h.listLive)
	posts.GET("/expired", h.listExpired)

	protected := posts.Group("", h.requireAuth())
	protected.POST("", h.createPost)
	protected.GET("/topic/:topic", h.browseTopic)
	protected.GET("/top-interest", h.topInterest)
	protected.GET("/:id", h.getPost)
	protected.POST("/:id/like", h.likePost)
	protected.POST("/:id/dislike", h.dislikePost)
	protected.POST("/:id/comments", h.commentPost)

	return r
}
