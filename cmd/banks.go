package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idlesign/mednsktest/internal/bank"
)

func newBanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "Показать имеющиеся вопросники",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			names, err := bank.Discover(cfg.BankDir)
			if err != nil {
				return fmt.Errorf("list banks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "В каталоге %s нет вопросников.\n", cfg.BankDir)
				return nil
			}

			fmt.Fprintf(out, "%-24s  %s\n", "Вопросник", "Вопросов")
			fmt.Fprintln(out, strings.Repeat("─", 40))
			for _, name := range names {
				questions, err := bank.Load(cfg.BankDir, name)
				if err != nil {
					fmt.Fprintf(out, "%-24s  ошибка: %v\n", name, err)
					continue
				}
				if isCommandName(cmd.Root(), name) {
					fmt.Fprintf(out, "%-24s  %d (совпадает с командой, переименуйте файл)\n", name, len(questions))
					continue
				}
				fmt.Fprintf(out, "%-24s  %d\n", name, len(questions))
			}
			return nil
		},
	}
}
