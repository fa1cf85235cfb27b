package models

import (
	"time"
)

// Comment represents a comment on an article as returned by the blog API.
// Top-level comments carry their replies; replies are never returned flat.
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    Author    `json:"author"`
	Replies   []Comment `json:"replies,omitempty"`
}

// Author is the author snapshot embedded in every comment
type Author struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
	Role   string  `json:"role"`
}

// IsReply reports whether the comment hangs under a parent
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CommentCreateRequest is the body of POST /comments
type CommentCreateRequest struct {
	ArticleID string  `json:"article_id"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id,omitempty"`
}

// CommentUpdateRequest is the body of PUT /comments/{id}
type CommentUpdateRequest struct {
	Content string `json:"content"`
}

// CommentListResponse is the body of GET /articles/{id}/comments
type CommentListResponse struct {
	Comments   []Comment `json:"comments"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// MaxCommentLength is the maximum number of characters in a comment
const MaxCommentLength = 1000

// FindComment looks up a comment by id anywhere in the tree
func FindComment(comments []Comment, id string) *Comment {
	for i := range comments {
		if comments[i].ID == id {
			return &comments[i]
		}
		if found := FindComment(comments[i].Replies, id); found != nil {
			return found
		}
	}
	return nil
}
