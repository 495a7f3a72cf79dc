package domain

import "time"

// Question is a multiple-choice question. CorrectAnswer is a zero-based
// index into Options.
type Question struct {
	ID            string    `json:"id"`
	Text          string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correctAnswer"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TeamResult records one completed quiz attempt. Results are append-only:
// never updated or individually deleted, only bulk-cleared by a reset.
type TeamResult struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

// AccessCode is a single-use team credential. TeamName keeps the original
// casing for display; team lookups are case-insensitive.
type AccessCode struct {
	ID        string    `json:"id"`
	TeamName  string    `json:"teamName"`
	Code      string    `json:"code"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"createdAt"`
}

// IssuedCode is the outcome of a code issuance: either a freshly generated
// code or the team's existing unused one.
type IssuedCode struct {
	Code     string `json:"code"`
	TeamName string `json:"teamName"`
	Existing bool   `json:"isExisting"`
}

// DefaultDurationSeconds is the countdown applied to every quiz attempt
// when no duration setting has been stored yet.
const DefaultDurationSeconds = 180
