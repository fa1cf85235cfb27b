package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/blog-comment-section/internal/models"
	"github.com/blog-comment-section/internal/validation"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	client *apiClient
}

// newCommentRepo creates a comment repository on top of client
func newCommentRepo(client *apiClient) CommentRepository {
	return &commentRepo{client: client}
}

// ListByArticle fetches the comment tree of an article
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	var resp models.CommentListResponse
	path := "/articles/" + url.PathEscape(articleID) + "/comments"
	if err := r.client.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Comments == nil {
		return []models.Comment{}, nil
	}
	return resp.Comments, nil
}

// Create posts a new comment or reply
func (r *commentRepo) Create(ctx context.Context, req *models.CommentCreateRequest) error {
	if errs := validation.ValidateCreate(req); len(errs) > 0 {
		return errs[0]
	}
	return r.client.do(ctx, http.MethodPost, "/comments", req, nil)
}

// Update replaces the content of a comment
func (r *commentRepo) Update(ctx context.Context, commentID string, req *models.CommentUpdateRequest) error {
	if errs := validation.ValidateUpdate(commentID, req); len(errs) > 0 {
		return errs[0]
	}
	return r.client.do(ctx, http.MethodPut, "/comments/"+url.PathEscape(commentID), req, nil)
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, commentID string) error {
	return r.client.do(ctx, http.MethodDelete, "/comments/"+url.PathEscape(commentID), nil, nil)
}
