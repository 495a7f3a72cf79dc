package app

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"team-quiz-service/internal/domain"
)

// AccessCodeRepository abstracts how access codes are stored (in-memory, document DB).
type AccessCodeRepository interface {
	// ListCodes returns all codes, most recently created first.
	ListCodes(ctx context.Context) ([]domain.AccessCode, error)
	// ActiveCodeForTeam finds an unused code whose team name matches the
	// lower-cased name. Returns nil when the team has no active code.
	ActiveCodeForTeam(ctx context.Context, lowerName string) (*domain.AccessCode, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	InsertCode(ctx context.Context, code domain.AccessCode) error
	// MarkCodeUsed flips the used flag and returns the updated record, or
	// nil when no code matches. Re-marking a used code is a no-op update.
	MarkCodeUsed(ctx context.Context, code string) (*domain.AccessCode, error)
}

const (
	codeLength    = 6
	issueAttempts = 5
)

// AccessService issues and redeems single-use team credentials.
type AccessService struct {
	codes AccessCodeRepository
	now   func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewAccessService(codes AccessCodeRepository) *AccessService {
	return &AccessService{
		codes: codes,
		now:   time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewAccessServiceWithClock is test-only for deterministic timestamps.
func NewAccessServiceWithClock(codes AccessCodeRepository, now func() time.Time) *AccessService {
	s := NewAccessService(codes)
	s.now = now
	return s
}

// Issue returns the team's existing unused code, or generates and persists a
// new one. forceNew skips reuse and always mints a fresh code; the previous
// code stays listed as unused. At most one record is inserted per call.
func (s *AccessService) Issue(ctx context.Context, teamName string, forceNew bool) (domain.IssuedCode, error) {
	trimmed := strings.TrimSpace(teamName)
	if trimmed == "" {
		return domain.IssuedCode{}, domain.ErrTeamNameRequired
	}

	existing, err := s.codes.ActiveCodeForTeam(ctx, strings.ToLower(trimmed))
	if err != nil {
		return domain.IssuedCode{}, fmt.Errorf("look up team code: %w", err)
	}
	if existing != nil && !forceNew {
		return domain.IssuedCode{
			Code:     existing.Code,
			TeamName: existing.TeamName,
			Existing: true,
		}, nil
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return domain.IssuedCode{}, err
	}

	record := domain.AccessCode{
		ID:        uuid.NewString(),
		TeamName:  trimmed, // keep original case for display
		Code:      code,
		CreatedAt: s.now(),
	}
	if err := s.codes.InsertCode(ctx, record); err != nil {
		return domain.IssuedCode{}, fmt.Errorf("insert code: %w", err)
	}

	return domain.IssuedCode{Code: code, TeamName: trimmed}, nil
}

// generateCode draws a pseudo-random value, renders it in base 36, and keeps
// a fixed-length upper-cased slice. The code space is small, so retry on
// collision a bounded number of times.
func (s *AccessService) generateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < issueAttempts; attempt++ {
		s.mu.Lock()
		raw := strconv.FormatUint(s.rnd.Uint64(), 36)
		s.mu.Unlock()
		if len(raw) < codeLength {
			continue
		}
		code := strings.ToUpper(raw[len(raw)-codeLength:])

		exists, err := s.codes.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("no unique code after %d attempts", issueAttempts)
}

// Redeem marks the code used and returns the updated record. Redeeming a
// nonexistent code returns (nil, nil); redeeming an already-used code
// succeeds as a no-op update. The presentation layer checks the used flag
// before admitting a team.
func (s *AccessService) Redeem(ctx context.Context, code string) (*domain.AccessCode, error) {
	updated, err := s.codes.MarkCodeUsed(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("redeem code: %w", err)
	}
	return updated, nil
}

// List returns every issued code, newest first.
func (s *AccessService) List(ctx context.Context) ([]domain.AccessCode, error) {
	return s.codes.ListCodes(ctx)
}
