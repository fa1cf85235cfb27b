package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/blog-comment-section/internal/config"
	"github.com/blog-comment-section/internal/mocks"
	"github.com/rs/zerolog"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestService(ttl time.Duration) (*sectionService, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	svc := newSectionService(mocks.NewMockCommentRepository(), config.SessionConfig{
		TTL:           ttl,
		SweepInterval: 10 * time.Millisecond,
	}, zerolog.Nop())
	svc.now = clock.Now
	return svc, clock
}

func TestSectionService_SectionPerSession(t *testing.T) {
	svc, _ := newTestService(time.Minute)

	a := svc.Section("session-a")
	if svc.Section("session-a") != a {
		t.Error("Same session should get the same section")
	}
	if svc.Section("session-b") == a {
		t.Error("Different sessions should get different sections")
	}
	if svc.Count() != 2 {
		t.Errorf("Expected 2 sections, got %d", svc.Count())
	}
}

func TestSectionService_SweepEvictsIdle(t *testing.T) {
	svc, clock := newTestService(30 * time.Minute)

	svc.Section("idle")
	clock.Advance(20 * time.Minute)
	active := svc.Section("active")
	clock.Advance(15 * time.Minute)

	if evicted := svc.sweep(); evicted != 1 {
		t.Errorf("Expected 1 eviction, got %d", evicted)
	}
	if svc.Count() != 1 {
		t.Errorf("Expected 1 section left, got %d", svc.Count())
	}
	if svc.Section("active") != active {
		t.Error("Active section should survive the sweep")
	}
}

func TestSectionService_TouchKeepsSectionAlive(t *testing.T) {
	svc, clock := newTestService(10 * time.Minute)

	s := svc.Section("visitor")
	for i := 0; i < 5; i++ {
		clock.Advance(8 * time.Minute)
		svc.Section("visitor")
		svc.sweep()
	}

	if svc.Section("visitor") != s {
		t.Error("Section touched within the TTL should not be evicted")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSectionService_SweeperLifecycle(t *testing.T) {
	svc, clock := newTestService(time.Minute)

	svc.Section("old")
	clock.Advance(2 * time.Minute)

	svc.StartSweeper(context.Background())
	if !svc.isRunning() {
		t.Fatal("Sweeper should be running as soon as StartSweeper returns")
	}

	waitFor(t, func() bool { return svc.Count() == 0 })

	svc.StopSweeper()
	if svc.isRunning() {
		t.Error("Sweeper should not be running after StopSweeper")
	}

	// Stopping twice is a no-op
	svc.StopSweeper()
}

func TestSectionService_StopRightAfterStart(t *testing.T) {
	svc, _ := newTestService(time.Minute)

	svc.StartSweeper(context.Background())
	svc.StopSweeper()

	if svc.isRunning() {
		t.Error("Sweeper started and immediately stopped should not be running")
	}
}

func TestSectionService_RestartAfterContextCancel(t *testing.T) {
	svc, clock := newTestService(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	svc.StartSweeper(ctx)
	cancel()
	waitFor(t, func() bool { return !svc.isRunning() })

	svc.Section("old")
	clock.Advance(2 * time.Minute)

	svc.StartSweeper(context.Background())
	defer svc.StopSweeper()

	if !svc.isRunning() {
		t.Fatal("Sweeper should restart after its context was cancelled")
	}
	waitFor(t, func() bool { return svc.Count() == 0 })
}
