package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"team-quiz-service/internal/domain"
)

// QuestionRepository abstracts question storage.
type QuestionRepository interface {
	// ListQuestions returns questions in creation order.
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	// GetQuestion returns nil when no question has the given ID.
	GetQuestion(ctx context.Context, id string) (*domain.Question, error)
	InsertQuestion(ctx context.Context, q domain.Question) error
	UpdateQuestion(ctx context.Context, q domain.Question) error
	// DeleteQuestion is idempotent: deleting a missing ID is not an error.
	DeleteQuestion(ctx context.Context, id string) error
}

// SettingRepository stores typed settings; duration is the only key in use.
type SettingRepository interface {
	// Duration returns (seconds, ok); ok is false when nothing is stored yet.
	Duration(ctx context.Context) (int, bool, error)
	SaveDuration(ctx context.Context, seconds int) error
}

// Resetter bulk-clears the result and access-code collections. Questions
// and settings survive a reset.
type Resetter interface {
	Reset(ctx context.Context) error
}

// AdminService covers question CRUD, the duration setting, and bulk reset.
type AdminService struct {
	questions QuestionRepository
	settings  SettingRepository
	resetter  Resetter
	results   *ResultService
	now       func() time.Time
}

func NewAdminService(questions QuestionRepository, settings SettingRepository, resetter Resetter, results *ResultService) *AdminService {
	return &AdminService{
		questions: questions,
		settings:  settings,
		resetter:  resetter,
		results:   results,
		now:       time.Now,
	}
}

func (s *AdminService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return s.questions.ListQuestions(ctx)
}

// CreateQuestion validates and stores a new question. There is no
// uniqueness constraint on question text.
func (s *AdminService) CreateQuestion(ctx context.Context, text string, options []string, correctAnswer int) (domain.Question, error) {
	if err := validateQuestion(text, options, correctAnswer); err != nil {
		return domain.Question{}, err
	}

	now := s.now()
	q := domain.Question{
		ID:            uuid.NewString(),
		Text:          text,
		Options:       options,
		CorrectAnswer: correctAnswer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.questions.InsertQuestion(ctx, q); err != nil {
		return domain.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

// UpdateQuestion replaces text, options, and correct answer of an existing
// question. A missing ID fails with ErrQuestionNotFound.
func (s *AdminService) UpdateQuestion(ctx context.Context, id, text string, options []string, correctAnswer int) (domain.Question, error) {
	if err := validateQuestion(text, options, correctAnswer); err != nil {
		return domain.Question{}, err
	}

	existing, err := s.questions.GetQuestion(ctx, id)
	if err != nil {
		return domain.Question{}, fmt.Errorf("get question: %w", err)
	}
	if existing == nil {
		return domain.Question{}, domain.ErrQuestionNotFound
	}

	existing.Text = text
	existing.Options = options
	existing.CorrectAnswer = correctAnswer
	existing.UpdatedAt = s.now()
	if err := s.questions.UpdateQuestion(ctx, *existing); err != nil {
		return domain.Question{}, fmt.Errorf("update question: %w", err)
	}
	return *existing, nil
}

func (s *AdminService) DeleteQuestion(ctx context.Context, id string) error {
	return s.questions.DeleteQuestion(ctx, id)
}

// Duration returns the configured countdown in seconds. When no setting is
// stored yet the default is persisted on first read, so later reads observe
// the same stored value.
func (s *AdminService) Duration(ctx context.Context) (int, error) {
	seconds, ok, err := s.settings.Duration(ctx)
	if err != nil {
		return 0, fmt.Errorf("read duration: %w", err)
	}
	if ok {
		return seconds, nil
	}

	if err := s.settings.SaveDuration(ctx, domain.DefaultDurationSeconds); err != nil {
		return 0, fmt.Errorf("persist default duration: %w", err)
	}
	return domain.DefaultDurationSeconds, nil
}

func (s *AdminService) SetDuration(ctx context.Context, seconds int) error {
	if seconds <= 0 {
		return domain.ErrInvalidDuration
	}
	if err := s.settings.SaveDuration(ctx, seconds); err != nil {
		return fmt.Errorf("save duration: %w", err)
	}
	return nil
}

// Reset clears team results and access codes. Questions and settings stay.
func (s *AdminService) Reset(ctx context.Context) error {
	if err := s.resetter.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if s.results != nil {
		s.results.broadcast(ctx)
	}
	return nil
}

func validateQuestion(text string, options []string, correctAnswer int) error {
	if text == "" {
		return domain.ErrQuestionTextRequired
	}
	if correctAnswer < 0 || correctAnswer >= len(options) {
		return domain.ErrInvalidCorrectAnswer
	}
	return nil
}
