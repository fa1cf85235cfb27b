package service

import (
	"context"
	"sync"
	"time"

	"github.com/blog-comment-section/internal/config"
	"github.com/blog-comment-section/internal/repository"
	"github.com/blog-comment-section/internal/section"
	"github.com/rs/zerolog"
)

type sessionEntry struct {
	section  *section.Section
	lastSeen time.Time
}

// sectionService is the concrete implementation of SectionService
type sectionService struct {
	repo          repository.CommentRepository
	log           zerolog.Logger
	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	sessionsMu sync.Mutex
	sessions   map[string]*sessionEntry

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

func newSectionService(repo repository.CommentRepository, cfg config.SessionConfig, log zerolog.Logger) *sectionService {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	return &sectionService{
		repo:          repo,
		log:           log.With().Str("service", "sections").Logger(),
		ttl:           cfg.TTL,
		sweepInterval: interval,
		now:           time.Now,
		sessions:      make(map[string]*sessionEntry),
	}
}

// Section returns the visitor's section, creating it on first use
func (s *sectionService) Section(sessionID string) *section.Section {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{section: section.New(s.repo, s.log)}
		s.sessions[sessionID] = entry
		s.log.Debug().Str("session_id", sessionID).Msg("Section created")
	}
	entry.lastSeen = s.now()
	return entry.section
}

// Count returns the number of live sections
func (s *sectionService) Count() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return len(s.sessions)
}

// StartSweeper launches the idle section sweeper. It runs until ctx is
// cancelled or StopSweeper is called, and may be started again afterwards.
func (s *sectionService) StartSweeper(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)

	go s.sweepLoop(s.ctx)
}

func (s *sectionService) sweepLoop(ctx context.Context) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		if s.ctx == ctx {
			s.running = false
		}
		s.mu.Unlock()
	}()

	s.log.Info().Dur("ttl", s.ttl).Dur("interval", s.sweepInterval).Msg("Section sweeper started")

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Section sweeper stopping")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// StopSweeper stops the sweeper and waits for it to exit
func (s *sectionService) StopSweeper() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.log.Info().Msg("Section sweeper stopped")
}

// isRunning reports whether the sweeper loop is active
func (s *sectionService) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// sweep drops sections idle for longer than the TTL
func (s *sectionService) sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		s.log.Info().Int("evicted", evicted).Int("active", len(s.sessions)).Msg("Evicted idle sections")
	}
	return evicted
}
