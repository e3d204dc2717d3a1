package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idlesign/mednsktest/internal/bank"
	"github.com/idlesign/mednsktest/internal/progress"
)

func newResetCmd() *cobra.Command {
	resetCmd := &cobra.Command{
		Use:   "reset <bank>",
		Short: "Сбросить сохранённый прогресс вопросника",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withHistory, _ := cmd.Flags().GetBool("history")
			if !bank.ValidName(args[0]) {
				return fmt.Errorf("invalid bank name %q", args[0])
			}

			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			out := cmd.OutOrStdout()
			if err := progress.New(cfg.ProgressDir, args[0]).Reset(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Прогресс вопросника %s сброшен.\n", args[0])

			if !withHistory {
				return nil
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.HistoryRepo().DeleteBank(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("delete history: %w", err)
			}
			fmt.Fprintf(out, "Удалено сеансов из истории: %d\n", n)
			return nil
		},
	}
	resetCmd.Flags().Bool("history", false, "Удалить также историю сеансов")
	return resetCmd
}
