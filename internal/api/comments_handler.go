package api

import (
	"net/http"
	"time"

	"github.com/blog-comment-section/internal/config"
	"github.com/blog-comment-section/internal/section"
	"github.com/blog-comment-section/internal/service"
	"github.com/blog-comment-section/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles the comment section endpoints
type CommentHandler struct {
	services   *service.Services
	formatter  *view.Formatter
	signInURL  string
	csrfSecret string
	log        zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services:   services,
		formatter:  view.NewFormatter(cfg.Display.Locale, cfg.Display.Location()),
		signInURL:  cfg.Display.SignInURL,
		csrfSecret: cfg.Auth.JWTSecret,
		log:        log.With().Str("handler", "comments").Logger(),
	}
}

// Show handles GET /articles/:articleId/comments
// Mounts the visitor's section for the article and renders it
func (h *CommentHandler) Show(c *gin.Context) {
	s, props := h.section(c)
	s.Mount(c.Request.Context(), props)
	h.render(c, s)
}

// Submit handles POST /articles/:articleId/comments
func (h *CommentHandler) Submit(c *gin.Context) {
	s := h.current(c)
	s.SetNewComment(c.PostForm("content"))
	if !s.SubmitComment(c.Request.Context()) {
		h.log.Debug().Str("article_id", c.Param("articleId")).Msg("Comment not posted")
	}
	h.render(c, s)
}

// ToggleReply handles POST .../:commentId/reply
func (h *CommentHandler) ToggleReply(c *gin.Context) {
	s := h.current(c)
	s.ToggleReply(c.Param("commentId"))
	h.render(c, s)
}

// CancelReply handles POST .../:commentId/reply/cancel
func (h *CommentHandler) CancelReply(c *gin.Context) {
	s := h.current(c)
	s.CancelReply()
	h.render(c, s)
}

// SubmitReply handles POST .../:commentId/replies
func (h *CommentHandler) SubmitReply(c *gin.Context) {
	s := h.current(c)
	s.SetReplyContent(c.PostForm("content"))
	if !s.SubmitReply(c.Request.Context(), c.Param("commentId")) {
		h.log.Debug().Str("parent_id", c.Param("commentId")).Msg("Reply not posted")
	}
	h.render(c, s)
}

// StartEdit handles POST .../:commentId/edit
func (h *CommentHandler) StartEdit(c *gin.Context) {
	s := h.current(c)
	if !s.StartEdit(c.Param("commentId")) {
		if c.Query("format") == "json" {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		h.renderPageStatus(c, http.StatusNotFound, h.build(s))
		return
	}
	h.render(c, s)
}

// CancelEdit handles POST .../:commentId/edit/cancel
func (h *CommentHandler) CancelEdit(c *gin.Context) {
	s := h.current(c)
	s.CancelEdit()
	h.render(c, s)
}

// SubmitEdit handles POST .../:commentId/update
func (h *CommentHandler) SubmitEdit(c *gin.Context) {
	s := h.current(c)
	s.SetEditContent(c.PostForm("content"))
	if !s.SubmitEdit(c.Request.Context(), c.Param("commentId")) {
		h.log.Debug().Str("comment_id", c.Param("commentId")).Msg("Edit not saved")
	}
	h.render(c, s)
}

// Delete handles POST .../:commentId/delete
// Without confirm=yes the section is rendered with a confirmation prompt
func (h *CommentHandler) Delete(c *gin.Context) {
	s := h.current(c)
	commentID := c.Param("commentId")

	confirmed := c.PostForm("confirm") == "yes"
	s.Delete(c.Request.Context(), commentID, section.ConfirmFunc(func(string) bool {
		return confirmed
	}))

	if !confirmed {
		h.renderPage(c, h.build(s).WithDeleteConfirm(commentID))
		return
	}
	h.render(c, s)
}

// section returns the visitor's section and the props for this request
func (h *CommentHandler) section(c *gin.Context) (*section.Section, section.Props) {
	s := h.services.Sections.Section(c.GetString(sessionIDKey))
	props := section.Props{
		ArticleID: c.Param("articleId"),
		Viewer:    viewerFrom(c),
	}
	return s, props
}

// current returns the visitor's section with props refreshed
func (h *CommentHandler) current(c *gin.Context) *section.Section {
	s, props := h.section(c)
	s.SetProps(c.Request.Context(), props)
	return s
}

func (h *CommentHandler) build(s *section.Section) view.Page {
	return view.Build(s.Snapshot(), time.Now(), h.formatter, h.signInURL)
}

func (h *CommentHandler) render(c *gin.Context, s *section.Section) {
	h.renderPage(c, h.build(s))
}

func (h *CommentHandler) renderPage(c *gin.Context, page view.Page) {
	h.renderPageStatus(c, http.StatusOK, page)
}

// renderPageStatus writes the page as HTML, or as JSON with ?format=json
func (h *CommentHandler) renderPageStatus(c *gin.Context, status int, page view.Page) {
	page = page.WithCSRFToken(csrfToken(h.csrfSecret, c.GetString(sessionIDKey)))
	if c.Query("format") == "json" {
		c.JSON(status, page)
		return
	}
	c.HTML(status, view.SectionTemplate, view.Document{
		Locale: h.formatter.Locale(),
		Page:   page,
	})
}
