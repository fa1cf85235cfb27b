package validation

import (
	"strings"
	"testing"

	"github.com/blog-comment-section/internal/models"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantErrors int
	}{
		{name: "plain text", content: "Great article!", wantErrors: 0},
		{name: "empty", content: "", wantErrors: 1},
		{name: "exactly at limit", content: strings.Repeat("a", models.MaxCommentLength), wantErrors: 0},
		{name: "over limit", content: strings.Repeat("a", models.MaxCommentLength+1), wantErrors: 1},
		{name: "multibyte counted as characters", content: strings.Repeat("é", models.MaxCommentLength), wantErrors: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateContent(tt.content)
			if len(errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errors), errors)
			}
		})
	}
}

func TestNormalizeContent(t *testing.T) {
	if got := NormalizeContent("  \n\t "); got != "" {
		t.Errorf("Expected whitespace-only content to normalize to empty, got %q", got)
	}
	if got := NormalizeContent("  hello world \n"); got != "hello world" {
		t.Errorf("Expected trimmed content, got %q", got)
	}
}

func TestValidateCreate(t *testing.T) {
	blank := " "
	parent := "c1"

	tests := []struct {
		name       string
		req        *models.CommentCreateRequest
		wantFields []string
	}{
		{
			name: "valid top-level comment",
			req:  &models.CommentCreateRequest{ArticleID: "a1", Content: "Great article!"},
		},
		{
			name: "valid reply",
			req:  &models.CommentCreateRequest{ArticleID: "a1", Content: "Agreed", ParentID: &parent},
		},
		{
			name:       "missing article",
			req:        &models.CommentCreateRequest{Content: "Great article!"},
			wantFields: []string{"article_id"},
		},
		{
			name:       "blank parent and empty content",
			req:        &models.CommentCreateRequest{ArticleID: "a1", ParentID: &blank},
			wantFields: []string{"parent_id", "content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateCreate(tt.req)
			if len(errors) != len(tt.wantFields) {
				t.Fatalf("Expected %d errors, got %d: %v", len(tt.wantFields), len(errors), errors)
			}
			for i, field := range tt.wantFields {
				if errors[i].Field != field {
					t.Errorf("Expected error on field %q, got %q", field, errors[i].Field)
				}
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	if errors := ValidateUpdate("c1", &models.CommentUpdateRequest{Content: "fixed typo"}); len(errors) != 0 {
		t.Errorf("Expected no errors, got %v", errors)
	}

	errors := ValidateUpdate("", &models.CommentUpdateRequest{Content: ""})
	if len(errors) != 2 {
		t.Errorf("Expected 2 errors, got %v", errors)
	}
}
