package mocks

import (
	"context"
	"sync"

	"github.com/blog-comment-section/internal/models"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu sync.Mutex

	Comments map[string][]models.Comment // by article ID

	ListError   error
	CreateError error
	UpdateError error
	DeleteError error

	// Hooks run before the default behaviour when set
	ListFunc   func(ctx context.Context, articleID string) ([]models.Comment, error)
	CreateFunc func(ctx context.Context, req *models.CommentCreateRequest) error

	ListCalls   []string
	CreateCalls []models.CommentCreateRequest
	UpdateCalls []UpdateCall
	DeleteCalls []string
}

// UpdateCall records one Update invocation
type UpdateCall struct {
	CommentID string
	Content   string
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string][]models.Comment),
	}
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, articleID)
	fn := m.ListFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, articleID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	comments := m.Comments[articleID]
	if comments == nil {
		return []models.Comment{}, nil
	}
	return comments, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, req *models.CommentCreateRequest) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, *req)
	fn := m.CreateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CreateError
}

func (m *MockCommentRepository) Update(ctx context.Context, commentID string, req *models.CommentUpdateRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{CommentID: commentID, Content: req.Content})
	return m.UpdateError
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, commentID)
	return m.DeleteError
}

// NetworkCalls returns the total number of API calls made
func (m *MockCommentRepository) NetworkCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ListCalls) + len(m.CreateCalls) + len(m.UpdateCalls) + len(m.DeleteCalls)
}

// ListCount returns the number of ListByArticle calls made
func (m *MockCommentRepository) ListCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ListCalls)
}

// Reset clears recorded calls
func (m *MockCommentRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = nil
	m.CreateCalls = nil
	m.UpdateCalls = nil
	m.DeleteCalls = nil
}
