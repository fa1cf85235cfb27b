package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/blog-comment-section/internal/auth"
	"github.com/blog-comment-section/internal/config"
	"github.com/blog-comment-section/internal/service"
	"github.com/blog-comment-section/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	sessionIDKey = "session_id"
	viewerKey    = "viewer"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(view.Templates())

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(sessionMiddleware(cfg.Session))
	router.Use(authMiddleware(cfg.Auth, log))

	// Handlers
	commentHandler := NewCommentHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// Comment section of an article
	comments := router.Group("/articles/:articleId/comments")
	comments.Use(csrfMiddleware(cfg.Auth.JWTSecret, log))
	{
		comments.GET("", commentHandler.Show)
		comments.POST("", commentHandler.Submit)

		comment := comments.Group("/:commentId")
		{
			comment.POST("/reply", commentHandler.ToggleReply)
			comment.POST("/reply/cancel", commentHandler.CancelReply)
			comment.POST("/replies", commentHandler.SubmitReply)
			comment.POST("/edit", commentHandler.StartEdit)
			comment.POST("/edit/cancel", commentHandler.CancelEdit)
			comment.POST("/update", commentHandler.SubmitEdit)
			comment.POST("/delete", commentHandler.Delete)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "comment-section",
	})
}

// metricsHandler returns section session metrics
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"sections": gin.H{
				"active": services.Sections.Count(),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// sessionMiddleware assigns every visitor a session id cookie
func sessionMiddleware(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err == nil {
			_, err = uuid.Parse(sessionID)
		}
		if err != nil {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sessionID, int(cfg.TTL.Seconds()), "/", "", cfg.SecureCookie, true)
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// authMiddleware decodes the visitor's token when present. It never rejects a
// request; visitors without a valid token are anonymous.
func authMiddleware(cfg config.AuthConfig, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.GetBearerToken(c.Request.Header)
		if errors.Is(err, auth.ErrNoAuthorizationHeader) {
			token, _ = c.Cookie(cfg.CookieName)
		}

		viewer := auth.Anonymous()
		if token != "" {
			user, err := auth.ParseToken(token, cfg.JWTSecret)
			if err != nil {
				log.Debug().Err(err).Msg("Ignoring invalid token")
			} else {
				viewer = auth.NewViewer(user)
				c.Request = c.Request.WithContext(auth.WithToken(c.Request.Context(), token))
			}
		}

		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// viewerFrom returns the viewer set by authMiddleware
func viewerFrom(c *gin.Context) auth.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(auth.Viewer); ok {
			return viewer
		}
	}
	return auth.Anonymous()
}
