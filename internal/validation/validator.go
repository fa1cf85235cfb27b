package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blog-comment-section/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeContent trims surrounding whitespace from comment text
func NormalizeContent(content string) string {
	return strings.TrimSpace(content)
}

// ValidateContent checks comment text before it is sent to the API.
// Content is expected to be normalized already.
func ValidateContent(content string) []ValidationError {
	var errors []ValidationError

	if content == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
		return errors
	}

	if n := utf8.RuneCountInString(content); n > models.MaxCommentLength {
		errors = append(errors, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content exceeds maximum of %d characters (has %d)", models.MaxCommentLength, n),
		})
	}

	return errors
}

// ValidateCreate validates a new comment or reply
func ValidateCreate(req *models.CommentCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.ArticleID) == "" {
		errors = append(errors, ValidationError{Field: "article_id", Message: "article_id is required"})
	}

	if req.ParentID != nil && strings.TrimSpace(*req.ParentID) == "" {
		errors = append(errors, ValidationError{Field: "parent_id", Message: "parent_id must not be blank", Value: *req.ParentID})
	}

	errors = append(errors, ValidateContent(req.Content)...)

	return errors
}

// ValidateUpdate validates an edit of an existing comment
func ValidateUpdate(commentID string, req *models.CommentUpdateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(commentID) == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	}

	errors = append(errors, ValidateContent(req.Content)...)

	return errors
}
