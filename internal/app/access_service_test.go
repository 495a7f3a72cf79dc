package app_test

import (
	"context"
	"testing"

	"team-quiz-service/internal/app"
	"team-quiz-service/internal/infra/memory"
)

func TestIssueReturnsExistingCode(t *testing.T) {
	ctx := context.Background()
	service := app.NewAccessService(memory.NewStore())

	first, err := service.Issue(ctx, "Falcons", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if first.Existing {
		t.Fatalf("expected fresh code, got existing")
	}
	if len(first.Code) != 6 {
		t.Fatalf("expected 6-char code, got %q", first.Code)
	}

	// Same team, different casing and padding: must get the same code back.
	second, err := service.Issue(ctx, "  fAlCoNs ", false)
	if err != nil {
		t.Fatalf("issue again: %v", err)
	}
	if !second.Existing {
		t.Fatalf("expected existing code")
	}
	if second.Code != first.Code {
		t.Fatalf("expected same code %q, got %q", first.Code, second.Code)
	}
	if second.TeamName != "Falcons" {
		t.Fatalf("expected original-case team name, got %q", second.TeamName)
	}
}

func TestIssueForceNewKeepsOldCodeUnused(t *testing.T) {
	ctx := context.Background()
	service := app.NewAccessService(memory.NewStore())

	first, err := service.Issue(ctx, "Falcons", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, err := service.Issue(ctx, "Falcons", true)
	if err != nil {
		t.Fatalf("issue forceNew: %v", err)
	}
	if second.Existing {
		t.Fatalf("forceNew must mint a fresh code")
	}
	if second.Code == first.Code {
		t.Fatalf("expected a different code, got %q twice", first.Code)
	}

	codes, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(codes))
	}
	for _, c := range codes {
		if c.Used {
			t.Fatalf("expected code %q to remain unused", c.Code)
		}
	}
}

func TestIssueRequiresTeamName(t *testing.T) {
	ctx := context.Background()
	service := app.NewAccessService(memory.NewStore())

	for _, name := range []string{"", "   ", "\t"} {
		if _, err := service.Issue(ctx, name, false); err == nil {
			t.Fatalf("expected validation error for name %q", name)
		}
	}
}

func TestRedeemIsSilentlyIdempotent(t *testing.T) {
	ctx := context.Background()
	service := app.NewAccessService(memory.NewStore())

	issued, err := service.Issue(ctx, "Falcons", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	updated, err := service.Redeem(ctx, issued.Code)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if updated == nil || !updated.Used {
		t.Fatalf("expected code marked used, got %+v", updated)
	}

	// Second redemption of a used code does not error; the login view
	// checks the used flag itself.
	again, err := service.Redeem(ctx, issued.Code)
	if err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if again == nil || !again.Used {
		t.Fatalf("expected used code back, got %+v", again)
	}

	// Redeeming a code that was never issued is a silent no-op.
	missing, err := service.Redeem(ctx, "ZZZZZZ")
	if err != nil {
		t.Fatalf("redeem unknown: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown code, got %+v", missing)
	}
}

func TestUsedCodeNeverAuthorizesReentry(t *testing.T) {
	ctx := context.Background()
	service := app.NewAccessService(memory.NewStore())

	issued, err := service.Issue(ctx, "Falcons", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := service.Redeem(ctx, issued.Code); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	// With the only code used, the team is treated as new on reissue.
	reissued, err := service.Issue(ctx, "Falcons", false)
	if err != nil {
		t.Fatalf("reissue: %v", err)
	}
	if reissued.Existing {
		t.Fatalf("used code must not be handed out again")
	}
	if reissued.Code == issued.Code {
		t.Fatalf("expected a fresh code after redemption")
	}
}
