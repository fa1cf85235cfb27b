// Package section holds the state of one visitor's comment section for an
// article and the operations a visitor can perform on it.
//
// The comment list is a disposable snapshot of the blog API: every successful
// mutation is followed by a full reload, and nothing is updated optimistically.
package section

import (
	"context"
	"sync"

	"github.com/blog-comment-section/internal/auth"
	"github.com/blog-comment-section/internal/models"
	"github.com/blog-comment-section/internal/repository"
	"github.com/blog-comment-section/internal/validation"
	"github.com/rs/zerolog"
)

// DeletePrompt is the question a visitor must confirm before a comment is deleted
const DeletePrompt = "Are you sure you want to delete this comment?"

// Confirmer asks the visitor to confirm a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt)
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Props are the inputs a section is rendered with
type Props struct {
	ArticleID string
	Viewer    auth.Viewer
}

// State is a point-in-time copy of a section, used for rendering
type State struct {
	Props
	Comments     []models.Comment
	Loading      bool
	NewComment   string
	ReplyTo      *string
	ReplyContent string
	EditingID    *string
	EditContent  string
	Submitting   bool
}

// Section is the comment section of one article as seen by one visitor.
// The mutex guards state only; it is never held across an API call.
type Section struct {
	repo repository.CommentRepository
	log  zerolog.Logger

	mu           sync.Mutex
	props        Props
	mounted      bool
	comments     []models.Comment
	loading      bool
	newComment   string
	replyTo      *string
	replyContent string
	editingID    *string
	editContent  string
	submitting   bool
}

// New creates an unmounted section
func New(repo repository.CommentRepository, log zerolog.Logger) *Section {
	return &Section{
		repo:     repo,
		log:      log.With().Str("component", "comment_section").Logger(),
		comments: []models.Comment{},
		loading:  true,
	}
}

// Mount stores props and loads the comments of the article
func (s *Section) Mount(ctx context.Context, props Props) {
	s.mu.Lock()
	s.props = props
	s.mounted = true
	s.mu.Unlock()

	s.Load(ctx)
}

// SetProps stores props, reloading only when the article changed
func (s *Section) SetProps(ctx context.Context, props Props) {
	s.mu.Lock()
	changed := !s.mounted || s.props.ArticleID != props.ArticleID
	s.props = props
	s.mounted = true
	s.mu.Unlock()

	if changed {
		s.Load(ctx)
	}
}

// Load fetches the comment tree and replaces the local snapshot.
// On failure the previous snapshot is kept.
func (s *Section) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	articleID := s.props.ArticleID
	s.mu.Unlock()

	comments, err := s.repo.ListByArticle(ctx, articleID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to load comments")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	s.comments = comments
}

// SetNewComment updates the compose box
func (s *Section) SetNewComment(content string) {
	s.mu.Lock()
	s.newComment = content
	s.mu.Unlock()
}

// SetReplyContent updates the open reply form
func (s *Section) SetReplyContent(content string) {
	s.mu.Lock()
	s.replyContent = content
	s.mu.Unlock()
}

// SetEditContent updates the open edit form
func (s *Section) SetEditContent(content string) {
	s.mu.Lock()
	s.editContent = content
	s.mu.Unlock()
}

// SubmitComment posts the compose box as a new top-level comment.
// It reports whether the comment was accepted by the API.
func (s *Section) SubmitComment(ctx context.Context) bool {
	s.mu.Lock()
	content := validation.NormalizeContent(s.newComment)
	if !s.beginSubmitLocked(content, true) {
		s.mu.Unlock()
		return false
	}
	req := &models.CommentCreateRequest{ArticleID: s.props.ArticleID, Content: content}
	s.mu.Unlock()
	defer s.endSubmit()

	if err := s.repo.Create(ctx, req); err != nil {
		s.log.Error().Err(err).Str("article_id", req.ArticleID).Msg("Failed to submit comment")
		return false
	}

	s.mu.Lock()
	s.newComment = ""
	s.mu.Unlock()

	s.Load(ctx)
	return true
}

// ToggleReply opens the reply form under a comment, or closes it if it is already open there
func (s *Section) ToggleReply(commentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replyTo != nil && *s.replyTo == commentID {
		s.replyTo = nil
		return
	}
	id := commentID
	s.replyTo = &id
}

// CancelReply closes the reply form and discards its text
func (s *Section) CancelReply() {
	s.mu.Lock()
	s.replyTo = nil
	s.replyContent = ""
	s.mu.Unlock()
}

// SubmitReply posts the reply form as a reply to parentID
func (s *Section) SubmitReply(ctx context.Context, parentID string) bool {
	s.mu.Lock()
	content := validation.NormalizeContent(s.replyContent)
	if !s.beginSubmitLocked(content, true) {
		s.mu.Unlock()
		return false
	}
	parent := parentID
	req := &models.CommentCreateRequest{ArticleID: s.props.ArticleID, Content: content, ParentID: &parent}
	s.mu.Unlock()
	defer s.endSubmit()

	if err := s.repo.Create(ctx, req); err != nil {
		s.log.Error().Err(err).
			Str("article_id", req.ArticleID).
			Str("parent_id", parentID).
			Msg("Failed to submit reply")
		return false
	}

	s.mu.Lock()
	s.replyContent = ""
	s.replyTo = nil
	s.mu.Unlock()

	s.Load(ctx)
	return true
}

// StartEdit puts a comment in edit mode, seeding the form with its current content
func (s *Section) StartEdit(commentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := models.FindComment(s.comments, commentID)
	if comment == nil {
		return false
	}
	id := commentID
	s.editingID = &id
	s.editContent = comment.Content
	return true
}

// CancelEdit leaves edit mode and discards the edit text
func (s *Section) CancelEdit() {
	s.mu.Lock()
	s.editingID = nil
	s.editContent = ""
	s.mu.Unlock()
}

// SubmitEdit sends the edit form as the new content of commentID
func (s *Section) SubmitEdit(ctx context.Context, commentID string) bool {
	s.mu.Lock()
	content := validation.NormalizeContent(s.editContent)
	if !s.beginSubmitLocked(content, false) {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()
	defer s.endSubmit()

	if err := s.repo.Update(ctx, commentID, &models.CommentUpdateRequest{Content: content}); err != nil {
		s.log.Error().Err(err).Str("comment_id", commentID).Msg("Failed to edit comment")
		return false
	}

	s.mu.Lock()
	s.editingID = nil
	s.editContent = ""
	s.mu.Unlock()

	s.Load(ctx)
	return true
}

// Delete removes a comment once the visitor confirms
func (s *Section) Delete(ctx context.Context, commentID string, confirm Confirmer) bool {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		s.log.Error().Err(err).Str("comment_id", commentID).Msg("Failed to delete comment")
		return false
	}

	s.Load(ctx)
	return true
}

// CanEdit reports whether the viewer gets edit and delete affordances on a comment.
// This only toggles the UI; the API enforces ownership.
func CanEdit(viewer auth.Viewer, comment *models.Comment) bool {
	if !viewer.Authenticated || viewer.User == nil {
		return false
	}
	return viewer.User.ID == comment.AuthorID || viewer.User.IsAdmin()
}

// Snapshot returns a copy of the current state
func (s *Section) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Props:        s.props,
		Comments:     s.comments,
		Loading:      s.loading,
		NewComment:   s.newComment,
		ReplyTo:      copyID(s.replyTo),
		ReplyContent: s.replyContent,
		EditingID:    copyID(s.editingID),
		EditContent:  s.editContent,
		Submitting:   s.submitting,
	}
}

// beginSubmitLocked checks the submit preconditions and raises the submitting flag.
// Callers must hold s.mu.
func (s *Section) beginSubmitLocked(content string, requireAuth bool) bool {
	if s.submitting {
		return false
	}
	if requireAuth && !s.props.Viewer.Authenticated {
		return false
	}
	if errs := validation.ValidateContent(content); len(errs) > 0 {
		if content != "" {
			s.log.Warn().Str("reason", errs[0].Message).Msg("Comment rejected before submit")
		}
		return false
	}
	s.submitting = true
	return true
}

func (s *Section) endSubmit() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
