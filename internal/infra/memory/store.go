package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"team-quiz-service/internal/domain"
)

// Store is an in-memory implementation of the app repositories. It backs
// tests and serves as the fallback when no document store is configured.
type Store struct {
	mu        sync.RWMutex
	questions []domain.Question
	results   []domain.TeamResult
	codes     []domain.AccessCode
	duration  *int
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) ListQuestions(_ context.Context) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

func (s *Store) GetQuestion(_ context.Context, id string) (*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			q := s.questions[i]
			return &q, nil
		}
	}
	return nil, nil
}

func (s *Store) InsertQuestion(_ context.Context, q domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, q)
	return nil
}

func (s *Store) UpdateQuestion(_ context.Context, q domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == q.ID {
			s.questions[i] = q
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

func (s *Store) DeleteQuestion(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	// deleting a missing ID is not an error
	return nil
}

func (s *Store) ListResults(_ context.Context) ([]domain.TeamResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TeamResult, len(s.results))
	copy(out, s.results)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CompletedAt.Before(out[j].CompletedAt)
	})
	return out, nil
}

func (s *Store) InsertResult(_ context.Context, result domain.TeamResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *Store) ListCodes(_ context.Context) ([]domain.AccessCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AccessCode, len(s.codes))
	copy(out, s.codes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ActiveCodeForTeam(_ context.Context, lowerName string) (*domain.AccessCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.codes {
		if !s.codes[i].Used && strings.ToLower(s.codes[i].TeamName) == lowerName {
			c := s.codes[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) CodeExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.codes {
		if s.codes[i].Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) InsertCode(_ context.Context, code domain.AccessCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = append(s.codes, code)
	return nil
}

func (s *Store) MarkCodeUsed(_ context.Context, code string) (*domain.AccessCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.codes {
		if s.codes[i].Code == code {
			s.codes[i].Used = true
			c := s.codes[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) Duration(_ context.Context) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.duration == nil {
		return 0, false, nil
	}
	return *s.duration, true, nil
}

func (s *Store) SaveDuration(_ context.Context, seconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = &seconds
	return nil
}

// Reset clears results and access codes; questions and settings survive.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.codes = nil
	return nil
}
