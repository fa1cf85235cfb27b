package repository

import (
	"context"

	"github.com/blog-comment-section/internal/config"
	"github.com/blog-comment-section/internal/models"
	"github.com/rs/zerolog"
)

// CommentRepository defines the interface for comment operations against the blog API
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error)
	Create(ctx context.Context, req *models.CommentCreateRequest) error
	Update(ctx context.Context, commentID string, req *models.CommentUpdateRequest) error
	Delete(ctx context.Context, commentID string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Comment CommentRepository
}

// New creates all repositories backed by the configured blog API
func New(cfg *config.APIConfig, log zerolog.Logger) *Repositories {
	client := newAPIClient(cfg, log)
	return &Repositories{
		Comment: newCommentRepo(client),
	}
}
