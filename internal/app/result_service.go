package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"team-quiz-service/internal/domain"
)

// ResultRepository abstracts team-result storage.
type ResultRepository interface {
	// ListResults returns results ordered by score descending, ties broken
	// by earlier completion time.
	ListResults(ctx context.Context) ([]domain.TeamResult, error)
	InsertResult(ctx context.Context, result domain.TeamResult) error
}

// ResultService appends completed quiz attempts and serves the leaderboard.
// Watchers subscribe to receive a fresh leaderboard snapshot whenever a
// result lands or the collections are reset.
type ResultService struct {
	results ResultRepository
	now     func() time.Time

	mu          sync.Mutex
	subscribers map[chan []domain.TeamResult]struct{}
}

func NewResultService(results ResultRepository) *ResultService {
	return &ResultService{
		results:     results,
		now:         time.Now,
		subscribers: make(map[chan []domain.TeamResult]struct{}),
	}
}

// NewResultServiceWithClock is test-only for deterministic timestamps.
func NewResultServiceWithClock(results ResultRepository, now func() time.Time) *ResultService {
	s := NewResultService(results)
	s.now = now
	return s
}

// Record appends one TeamResult for a completed attempt. Results are
// append-only; there is no update or individual delete path.
func (s *ResultService) Record(ctx context.Context, name, code string, score, total int) (domain.TeamResult, error) {
	result := domain.TeamResult{
		ID:             uuid.NewString(),
		Name:           name,
		Code:           code,
		Score:          score,
		TotalQuestions: total,
		CompletedAt:    s.now(),
	}
	if err := s.results.InsertResult(ctx, result); err != nil {
		return domain.TeamResult{}, fmt.Errorf("insert result: %w", err)
	}

	s.broadcast(ctx)
	return result, nil
}

// Leaderboard returns all results, best score first, earlier completion
// ranking higher on ties. Purely a read-side sort; no rank is stored.
func (s *ResultService) Leaderboard(ctx context.Context) ([]domain.TeamResult, error) {
	return s.results.ListResults(ctx)
}

// Subscribe returns a channel that receives leaderboard snapshots, starting
// with the current one. The caller must invoke the returned cancel function
// to avoid leaks.
func (s *ResultService) Subscribe(ctx context.Context) (<-chan []domain.TeamResult, func(), error) {
	initial, err := s.results.ListResults(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []domain.TeamResult, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

// broadcast pushes the latest leaderboard to all subscribers. Best-effort:
// the watch stream is advisory, so storage errors here are swallowed and
// slow watchers have their stale snapshot replaced rather than blocking.
func (s *ResultService) broadcast(ctx context.Context) {
	lb, err := s.results.ListResults(ctx)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- lb:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
