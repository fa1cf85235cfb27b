package service

import (
	"context"

	"github.com/blog-comment-section/internal/config"
	"github.com/blog-comment-section/internal/repository"
	"github.com/blog-comment-section/internal/section"
	"github.com/rs/zerolog"
)

// SectionService defines the interface for per-visitor comment sections
type SectionService interface {
	Section(sessionID string) *section.Section
	Count() int
	StartSweeper(ctx context.Context)
	StopSweeper()
}

// Services holds all service interfaces
type Services struct {
	Sections SectionService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Sections: newSectionService(repos.Comment, cfg.Session, log),
	}
}
