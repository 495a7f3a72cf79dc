package cli

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"team-quiz-service/internal/app"
	"team-quiz-service/internal/config"
	pgstore "team-quiz-service/internal/infra/postgres"
)

// NewSeedCmd loads a small set of demo questions into the document store.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := pgstore.NewStore(pool)
	admin := app.NewAdminService(store, store, store, nil)

	for _, q := range sampleQuestions() {
		if _, err := admin.CreateQuestion(ctx, q.text, q.options, q.correct); err != nil {
			return err
		}
	}
	slog.Info("sample questions inserted", "count", len(sampleQuestions()))
	return nil
}

type seedQuestion struct {
	text    string
	options []string
	correct int
}

func sampleQuestions() []seedQuestion {
	return []seedQuestion{
		{
			text:    "What is the capital of Lebanon?",
			options: []string{"Tripoli", "Beirut", "Sidon"},
			correct: 1,
		},
		{
			text:    "How many strings does a standard violin have?",
			options: []string{"4", "5", "6"},
			correct: 0,
		},
		{
			text:    "Which planet is known as the Red Planet?",
			options: []string{"Venus", "Jupiter", "Mars"},
			correct: 2,
		},
	}
}
