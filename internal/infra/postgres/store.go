package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"team-quiz-service/internal/domain"
)

// Store persists each collection as one JSONB document per row, mirroring
// the document-database shape the service was designed around. Filters and
// ordering run on JSONB expressions backed by expression indexes.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM questions ORDER BY data->>'createdAt'`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	return collect[domain.Question](rows)
}

func (s *Store) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM questions WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	var q domain.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("unmarshal question: %w", err)
	}
	return &q, nil
}

func (s *Store) InsertQuestion(ctx context.Context, q domain.Question) error {
	return s.insert(ctx, `INSERT INTO questions (id, data) VALUES ($1, $2)`, q.ID, q)
}

func (s *Store) UpdateQuestion(ctx context.Context, q domain.Question) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `UPDATE questions SET data=$2 WHERE id=$1`, q.ID, data)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM questions WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func (s *Store) ListResults(ctx context.Context) ([]domain.TeamResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM team_results ORDER BY (data->>'score')::int DESC, (data->>'completedAt')::timestamptz ASC`)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()
	return collect[domain.TeamResult](rows)
}

func (s *Store) InsertResult(ctx context.Context, result domain.TeamResult) error {
	return s.insert(ctx, `INSERT INTO team_results (id, data) VALUES ($1, $2)`, result.ID, result)
}

func (s *Store) ListCodes(ctx context.Context) ([]domain.AccessCode, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM access_codes ORDER BY data->>'createdAt' DESC`)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	defer rows.Close()
	return collect[domain.AccessCode](rows)
}

func (s *Store) ActiveCodeForTeam(ctx context.Context, lowerName string) (*domain.AccessCode, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM access_codes
		 WHERE lower(data->>'teamName')=$1 AND NOT (data->>'used')::boolean
		 ORDER BY data->>'createdAt' LIMIT 1`, lowerName).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team code: %w", err)
	}
	var code domain.AccessCode
	if err := json.Unmarshal(raw, &code); err != nil {
		return nil, fmt.Errorf("unmarshal code: %w", err)
	}
	return &code, nil
}

func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM access_codes WHERE data->>'code'=$1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check code: %w", err)
	}
	return exists, nil
}

func (s *Store) InsertCode(ctx context.Context, code domain.AccessCode) error {
	return s.insert(ctx, `INSERT INTO access_codes (id, data) VALUES ($1, $2)`, code.ID, code)
}

func (s *Store) MarkCodeUsed(ctx context.Context, code string) (*domain.AccessCode, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`UPDATE access_codes SET data = jsonb_set(data, '{used}', 'true')
		 WHERE data->>'code'=$1 RETURNING data`, code).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mark code used: %w", err)
	}
	var updated domain.AccessCode
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal code: %w", err)
	}
	return &updated, nil
}

func (s *Store) Duration(ctx context.Context) (int, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM settings WHERE key='duration'`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read duration setting: %w", err)
	}
	var seconds int
	if err := json.Unmarshal(raw, &seconds); err != nil {
		return 0, false, fmt.Errorf("unmarshal duration setting: %w", err)
	}
	return seconds, true, nil
}

func (s *Store) SaveDuration(ctx context.Context, seconds int) error {
	data, err := json.Marshal(seconds)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO settings (key, data) VALUES ('duration', $1)
		 ON CONFLICT (key) DO UPDATE SET data=EXCLUDED.data`, data)
	if err != nil {
		return fmt.Errorf("save duration setting: %w", err)
	}
	return nil
}

// Reset truncates results and access codes; questions and settings survive.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM team_results`); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM access_codes`); err != nil {
		return fmt.Errorf("clear access codes: %w", err)
	}
	return nil
}

func (s *Store) insert(ctx context.Context, stmt, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if _, err := s.pool.Exec(ctx, stmt, id, data); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func collect[T any](rows pgx.Rows) ([]T, error) {
	var out []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}
