package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idlesign/mednsktest/internal/store"
)

func newStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Показать историю сеансов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bankName, _ := cmd.Flags().GetString("bank")
			limit, _ := cmd.Flags().GetInt("limit")
			missed, _ := cmd.Flags().GetBool("missed")
			if missed && bankName == "" {
				return fmt.Errorf("--missed requires --bank")
			}

			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			repo := s.HistoryRepo()
			opts := store.QueryOpts{Bank: bankName, Limit: limit}
			out := cmd.OutOrStdout()

			if missed {
				misses, err := repo.MostMissed(cmd.Context(), opts)
				if err != nil {
					return fmt.Errorf("query misses: %w", err)
				}
				printMisses(out, misses)
				return nil
			}

			events, err := repo.RecentSessions(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query sessions: %w", err)
			}
			printSessions(out, events)
			return nil
		},
	}
	statsCmd.Flags().String("bank", "", "Только сеансы этого вопросника")
	statsCmd.Flags().Int("limit", 20, "Максимум строк")
	statsCmd.Flags().Bool("missed", false, "Вопросы с наибольшим числом ошибок (нужен --bank)")
	return statsCmd
}

func printSessions(w io.Writer, events []store.SessionEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "Сеансов пока нет.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-20s  %-7s  %-6s  %-6s  %s\n",
		"Начало", "Вопросник", "Задано", "Ошибок", "Успех", "Длительность")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, e := range events {
		name := e.Bank
		if len([]rune(name)) > 20 {
			name = string([]rune(name)[:20])
		}
		fmt.Fprintf(w, "%-19s  %-20s  %-7d  %-6d  %-6s  %s\n",
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			name,
			e.Asked,
			e.Failures,
			fmt.Sprintf("%d%%", e.Rate),
			e.FinishedAt.Sub(e.StartedAt).Round(time.Second),
		)
	}
}

func printMisses(w io.Writer, misses []store.QuestionMiss) {
	if len(misses) == 0 {
		fmt.Fprintln(w, "Ошибок пока нет.")
		return
	}

	fmt.Fprintf(w, "%-12s  %-7s  %s\n", "Вопрос", "Попыток", "Ошибок")
	fmt.Fprintln(w, strings.Repeat("─", 32))
	for _, m := range misses {
		fmt.Fprintf(w, "%-12s  %-7d  %d\n", m.QuestionID, m.Attempts, m.Misses)
	}
}
