package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idlesign/mednsktest/internal/app"
	"github.com/idlesign/mednsktest/internal/store"
)

// runQuiz opens the history store and runs one quiz session.
func runQuiz(cmd *cobra.Command, c *console, bankName string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := app.Options{
		BankDir:     cfg.BankDir,
		ProgressDir: cfg.ProgressDir,
		Bank:        bankName,
		Limit:       cfg.QuestionsLimit,
		Shuffle:     cfg.ShuffleAnswers,
		Track:       cfg.TrackProgress,
		UI:          cfg.UI,
		Stdin:       c.stdin,
		Stdout:      c.stdout,
		Logger:      log,
	}

	if cfg.History {
		var s *store.Store
		s, err = openStore(cfg)
		if err != nil {
			log.Warn("session history unavailable", zap.Error(err))
		} else {
			defer s.Close()
			opts.History = s.HistoryRepo()
		}
	}

	if _, err := app.Run(cmd.Context(), opts); err != nil {
		return err
	}
	c.quizCompleted = true
	return nil
}
