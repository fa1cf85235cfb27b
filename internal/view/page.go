// Package view turns a comment section snapshot into a render-ready page.
package view

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/blog-comment-section/internal/models"
	"github.com/blog-comment-section/internal/section"
)

// MaxReplyDepth bounds how deep nested replies are rendered
const MaxReplyDepth = 8

// Page is the view model of a whole comment section
type Page struct {
	ArticleID  string         `json:"article_id"`
	ActionPath string         `json:"action_path"`
	Title      string         `json:"title"`
	Loading    bool           `json:"loading"`
	Empty      bool           `json:"empty"`
	Compose    *ComposeForm   `json:"compose,omitempty"`
	SignIn     *SignInPrompt  `json:"sign_in,omitempty"`
	Comments   []CommentView  `json:"comments"`
	Confirm    *DeleteConfirm `json:"confirm,omitempty"`
	CSRFToken  string         `json:"csrf_token"`
}

// ComposeForm is the new comment form shown to signed-in visitors
type ComposeForm struct {
	ViewerInitial string `json:"viewer_initial"`
	Content       string `json:"content"`
	Counter       string `json:"counter"`
	SubmitLabel   string `json:"submit_label"`
	// Disabled is the live state of the submit control for JSON clients.
	// Rendered HTML disables the button only while Submitting.
	Disabled      bool   `json:"disabled"`
	Submitting    bool   `json:"submitting"`
	MaxLength     int    `json:"max_length"`
}

// SignInPrompt replaces the compose form for anonymous visitors
type SignInPrompt struct {
	Message string `json:"message"`
	Label   string `json:"label"`
	URL     string `json:"url"`
}

// DeleteConfirm asks the visitor to confirm deleting a comment
type DeleteConfirm struct {
	CommentID  string `json:"comment_id"`
	Prompt     string `json:"prompt"`
	ActionPath string `json:"action_path"`
}

// CommentView is one rendered comment with its replies
type CommentView struct {
	ID            string        `json:"id"`
	ActionPath    string        `json:"action_path"`
	AuthorName    string        `json:"author_name"`
	AuthorInitial string        `json:"author_initial"`
	IsAdmin       bool          `json:"is_admin"`
	Timestamp     string        `json:"timestamp"`
	Content       string        `json:"content"`
	IsReply       bool          `json:"is_reply"`
	CanReply      bool          `json:"can_reply"`
	CanEdit       bool          `json:"can_edit"`
	Edit          *TextForm     `json:"edit,omitempty"`
	Reply         *TextForm     `json:"reply,omitempty"`
	Replies       []CommentView `json:"replies,omitempty"`
	CSRFToken     string        `json:"-"`
}

// TextForm is an inline reply or edit form
type TextForm struct {
	Content     string `json:"content"`
	Placeholder string `json:"placeholder,omitempty"`
	SubmitLabel string `json:"submit_label"`
	Disabled    bool   `json:"disabled"`
	Submitting  bool   `json:"submitting"`
	MaxLength   int    `json:"max_length"`
}

// Build creates the page for a section snapshot at the given instant
func Build(state section.State, now time.Time, f *Formatter, signInURL string) Page {
	base := "/articles/" + url.PathEscape(state.ArticleID) + "/comments"

	page := Page{
		ArticleID:  state.ArticleID,
		ActionPath: base,
		Loading:    state.Loading,
		Comments:   []CommentView{},
	}

	if state.Loading {
		page.Title = "Comments"
		return page
	}
	page.Title = fmt.Sprintf("Comments (%d)", len(state.Comments))
	page.Empty = len(state.Comments) == 0

	if state.Viewer.Authenticated {
		name := ""
		if state.Viewer.User != nil {
			name = state.Viewer.User.Name
		}
		submitLabel := "Post Comment"
		if state.Submitting {
			submitLabel = "Posting..."
		}
		page.Compose = &ComposeForm{
			ViewerInitial: initial(name),
			Content:       state.NewComment,
			Counter:       fmt.Sprintf("%d/%d characters", utf8.RuneCountInString(state.NewComment), models.MaxCommentLength),
			SubmitLabel:   submitLabel,
			Disabled:      state.Submitting || strings.TrimSpace(state.NewComment) == "",
			Submitting:    state.Submitting,
			MaxLength:     models.MaxCommentLength,
		}
	} else {
		page.SignIn = &SignInPrompt{
			Message: "Please log in to leave a comment",
			Label:   "Sign in to comment",
			URL:     signInURL,
		}
	}

	b := builder{state: state, now: now, f: f, base: base}
	for i := range state.Comments {
		page.Comments = append(page.Comments, b.comment(&state.Comments[i], false, 0))
	}

	return page
}

// WithDeleteConfirm returns the page with a confirmation prompt for commentID
func (p Page) WithDeleteConfirm(commentID string) Page {
	p.Confirm = &DeleteConfirm{
		CommentID:  commentID,
		Prompt:     section.DeletePrompt,
		ActionPath: p.ActionPath + "/" + url.PathEscape(commentID) + "/delete",
	}
	return p
}

// WithCSRFToken returns the page with token set on every form it renders
func (p Page) WithCSRFToken(token string) Page {
	p.CSRFToken = token
	p.Comments = withCSRFToken(p.Comments, token)
	return p
}

func withCSRFToken(comments []CommentView, token string) []CommentView {
	if comments == nil {
		return nil
	}
	out := make([]CommentView, len(comments))
	for i, c := range comments {
		c.CSRFToken = token
		c.Replies = withCSRFToken(c.Replies, token)
		out[i] = c
	}
	return out
}

type builder struct {
	state section.State
	now   time.Time
	f     *Formatter
	base  string
}

func (b builder) comment(c *models.Comment, isReply bool, depth int) CommentView {
	editing := b.state.EditingID != nil && *b.state.EditingID == c.ID
	canEdit := section.CanEdit(b.state.Viewer, c)

	v := CommentView{
		ID:            c.ID,
		ActionPath:    b.base + "/" + url.PathEscape(c.ID),
		AuthorName:    c.Author.Name,
		AuthorInitial: initial(c.Author.Name),
		IsAdmin:       c.Author.Role == models.RoleAdmin,
		Timestamp:     b.f.FormatDate(c.CreatedAt, b.now),
		Content:       c.Content,
		IsReply:       isReply,
		CanReply:      b.state.Viewer.Authenticated && !isReply,
		CanEdit:       canEdit && !editing,
	}

	if editing {
		v.Edit = &TextForm{
			Content:     b.state.EditContent,
			SubmitLabel: "Save",
			Disabled:    b.state.Submitting || strings.TrimSpace(b.state.EditContent) == "",
			Submitting:  b.state.Submitting,
			MaxLength:   models.MaxCommentLength,
		}
	}

	if b.state.ReplyTo != nil && *b.state.ReplyTo == c.ID {
		v.Reply = &TextForm{
			Content:     b.state.ReplyContent,
			Placeholder: "Write a reply...",
			SubmitLabel: "Reply",
			Disabled:    b.state.Submitting || strings.TrimSpace(b.state.ReplyContent) == "",
			Submitting:  b.state.Submitting,
			MaxLength:   models.MaxCommentLength,
		}
	}

	if depth < MaxReplyDepth {
		for i := range c.Replies {
			v.Replies = append(v.Replies, b.comment(&c.Replies[i], true, depth+1))
		}
	}

	return v
}

// initial is the upper-cased first character of a name
func initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r))
}
