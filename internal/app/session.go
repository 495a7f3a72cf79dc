package app

import (
	"context"
	"sync"
	"time"

	"team-quiz-service/internal/domain"
)

// SessionState tracks a team's progress through one quiz attempt.
type SessionState int

const (
	StateNotStarted SessionState = iota
	StateInProgress
	StateSubmitted
)

// NoAnswer marks a question the team never answered. It compares unequal
// to every valid option index, so it always scores as wrong.
const NoAnswer = -1

// Ticker abstracts the one-second countdown tick so tests can drive time.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// SessionConfig wires one quiz attempt: the loaded questions, the countdown
// length, the team identity from login, and the services the terminal
// submission step reports to.
type SessionConfig struct {
	Team            string
	Code            string
	Questions       []domain.Question
	DurationSeconds int

	Results *ResultService
	Access  *AccessService

	// NewTicker overrides the default one-second ticker in tests.
	NewTicker func() Ticker
}

// Session is the per-team quiz attempt: NotStarted -> InProgress ->
// Submitted. The countdown is a cooperative ticking task; each tick
// decrements the remaining time and, at zero, force-submits through the
// same path as manual completion, so exactly one TeamResult is produced
// either way. Submitted is terminal; there is no resubmission.
type Session struct {
	cfg SessionConfig

	mu        sync.Mutex
	state     SessionState
	remaining int
	index     int
	selected  int
	answers   []int
	ticker    Ticker
	stop      chan struct{}
	result    *domain.TeamResult
}

func NewSession(cfg SessionConfig) *Session {
	answers := make([]int, len(cfg.Questions))
	for i := range answers {
		answers[i] = NoAnswer
	}
	return &Session{
		cfg:      cfg,
		selected: NoAnswer,
		answers:  answers,
	}
}

// Start moves the session to InProgress and begins the countdown. It is
// rejected when no questions are loaded. Starting an in-progress session is
// a no-op; starting a submitted one fails.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateInProgress:
		return nil
	case StateSubmitted:
		return domain.ErrQuizFinished
	}

	if len(s.cfg.Questions) == 0 {
		return domain.ErrNoQuestions
	}

	s.state = StateInProgress
	s.remaining = s.cfg.DurationSeconds
	s.index = 0

	newTicker := s.cfg.NewTicker
	if newTicker == nil {
		newTicker = func() Ticker { return realTicker{t: time.NewTicker(time.Second)} }
	}
	s.ticker = newTicker()
	s.stop = make(chan struct{})
	go s.countdown(ctx, s.ticker, s.stop)
	return nil
}

func (s *Session) countdown(ctx context.Context, ticker Ticker, stop chan struct{}) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			if s.tick(ctx) {
				return
			}
		}
	}
}

// tick burns one second; at zero it force-submits with whatever answers
// have been recorded. Reports true once the session no longer needs ticks.
func (s *Session) tick(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return true
	}

	s.remaining--
	if s.remaining > 0 {
		return false
	}
	s.remaining = 0
	_ = s.submitLocked(ctx)
	return true
}

// Select records the option the team currently has picked for the shown
// question. It only sticks once Next or submission records it.
func (s *Session) Select(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateNotStarted {
		return domain.ErrQuizNotStarted
	}
	if s.state == StateSubmitted {
		return domain.ErrQuizFinished
	}
	s.selected = optionIndex
	return nil
}

// Next records the current selection (or NoAnswer) for the shown question,
// clears the selection, and advances. On the last question it submits
// instead and reports finished=true.
func (s *Session) Next(ctx context.Context) (finished bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateNotStarted {
		return false, domain.ErrQuizNotStarted
	}
	if s.state == StateSubmitted {
		return true, domain.ErrQuizFinished
	}

	s.answers[s.index] = s.selected
	s.selected = NoAnswer

	if s.index < len(s.cfg.Questions)-1 {
		s.index++
		return false, nil
	}
	return true, s.submitLocked(ctx)
}

// submitLocked is the single terminal step shared by manual completion and
// timeout: fold in the pending selection, score, record the TeamResult,
// then redeem the login code. The two writes are not atomic; a crash in
// between leaves the code unused despite a recorded result (known gap).
func (s *Session) submitLocked(ctx context.Context) error {
	if s.selected != NoAnswer {
		s.answers[s.index] = s.selected
	}
	s.state = StateSubmitted
	s.stopCountdownLocked()

	score := Score(s.cfg.Questions, s.answers)
	result, err := s.cfg.Results.Record(ctx, s.cfg.Team, s.cfg.Code, score, len(s.cfg.Questions))
	if err != nil {
		return err
	}
	s.result = &result

	if _, err := s.cfg.Access.Redeem(ctx, s.cfg.Code); err != nil {
		return err
	}
	return nil
}

// Stop cancels the countdown without submitting, e.g. when the team
// navigates away. In-memory answers are abandoned, nothing is persisted.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress {
		s.state = StateNotStarted
	}
	s.stopCountdownLocked()
}

func (s *Session) stopCountdownLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining reports the countdown seconds left.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// QuestionIndex reports the zero-based index of the question being shown.
func (s *Session) QuestionIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Result returns the recorded TeamResult once submitted, nil before.
func (s *Session) Result() *domain.TeamResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Score counts positions where the recorded answer equals that question's
// correct option index. Answer lists shorter than the question list treat
// missing entries as wrong.
func Score(questions []domain.Question, answers []int) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			score++
		}
	}
	return score
}
