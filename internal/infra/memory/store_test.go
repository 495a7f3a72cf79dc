package memory

import (
	"context"
	"testing"
	"time"

	"team-quiz-service/internal/domain"
)

func TestListCodesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, code := range []string{"AAAAAA", "BBBBBB", "CCCCCC"} {
		err := store.InsertCode(ctx, domain.AccessCode{
			ID:        code,
			TeamName:  "Team " + code,
			Code:      code,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	codes, err := store.ListCodes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if codes[0].Code != "CCCCCC" || codes[2].Code != "AAAAAA" {
		t.Fatalf("expected newest first, got %+v", codes)
	}
}

func TestActiveCodeForTeamSkipsUsed(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_ = store.InsertCode(ctx, domain.AccessCode{ID: "1", TeamName: "Falcons", Code: "AAAAAA", Used: true})
	_ = store.InsertCode(ctx, domain.AccessCode{ID: "2", TeamName: "Falcons", Code: "BBBBBB"})

	code, err := store.ActiveCodeForTeam(ctx, "falcons")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if code == nil || code.Code != "BBBBBB" {
		t.Fatalf("expected the unused code, got %+v", code)
	}

	if code, _ := store.ActiveCodeForTeam(ctx, "eagles"); code != nil {
		t.Fatalf("expected no code for unknown team, got %+v", code)
	}
}

func TestResultsOrderedByScoreThenTime(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_ = store.InsertResult(ctx, domain.TeamResult{ID: "a", Name: "A", Score: 5, CompletedAt: base.Add(10 * time.Second)})
	_ = store.InsertResult(ctx, domain.TeamResult{ID: "b", Name: "B", Score: 7, CompletedAt: base.Add(5 * time.Second)})
	_ = store.InsertResult(ctx, domain.TeamResult{ID: "c", Name: "C", Score: 5, CompletedAt: base.Add(3 * time.Second)})

	results, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{results[0].Name, results[1].Name, results[2].Name}
	if got[0] != "B" || got[1] != "C" || got[2] != "A" {
		t.Fatalf("expected B,C,A, got %v", got)
	}
}

func TestResetLeavesQuestionsAndSettings(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_ = store.InsertQuestion(ctx, domain.Question{ID: "q1", Text: "?", Options: []string{"a"}})
	_ = store.SaveDuration(ctx, 120)
	_ = store.InsertResult(ctx, domain.TeamResult{ID: "r1"})
	_ = store.InsertCode(ctx, domain.AccessCode{ID: "c1", Code: "AAAAAA"})

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if results, _ := store.ListResults(ctx); len(results) != 0 {
		t.Fatalf("expected results cleared")
	}
	if codes, _ := store.ListCodes(ctx); len(codes) != 0 {
		t.Fatalf("expected codes cleared")
	}
	if questions, _ := store.ListQuestions(ctx); len(questions) != 1 {
		t.Fatalf("expected questions kept")
	}
	if seconds, ok, _ := store.Duration(ctx); !ok || seconds != 120 {
		t.Fatalf("expected duration kept, got %d ok=%v", seconds, ok)
	}
}
