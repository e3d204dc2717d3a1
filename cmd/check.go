package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idlesign/mednsktest/internal/bank"
)

// checkReport describes a parsed bank.
type checkReport struct {
	Bank      string          `json:"bank" yaml:"bank"`
	Path      string          `json:"path" yaml:"path"`
	Stats     bank.Stats      `json:"stats" yaml:"stats"`
	Questions []bank.Question `json:"questions" yaml:"questions"`
}

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check <bank>",
		Short: "Проверить разметку вопросника",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			questions, err := bank.Load(cfg.BankDir, args[0])
			if err != nil {
				return err
			}

			rep := checkReport{
				Bank:      args[0],
				Path:      bank.Path(cfg.BankDir, args[0]),
				Stats:     bank.Summarize(questions),
				Questions: questions,
			}
			return writeCheckReport(cmd.OutOrStdout(), rep, format)
		},
	}
	checkCmd.Flags().String("format", "text", "Формат вывода: text, yaml или json")
	return checkCmd
}

func writeCheckReport(w io.Writer, rep checkReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "text":
		writeCheckText(w, rep)
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text|yaml|json)", format)
	}
}

func writeCheckText(w io.Writer, rep checkReport) {
	s := rep.Stats
	fmt.Fprintf(w, "Вопросник: %s (%s)\n", rep.Bank, rep.Path)
	fmt.Fprintf(w, "  вопросов - %d\n", s.Questions)
	fmt.Fprintf(w, "  вариантов ответа - %d (в среднем %.1f)\n", s.Options, s.AvgOptions)
	fmt.Fprintf(w, "  ответ по номеру - %d\n", s.KeyedByNumber)
	fmt.Fprintf(w, "  ответ по маркеру - %d\n", s.KeyedByMarker)

	var marked []string
	for _, q := range rep.Questions {
		if q.Key == bank.KeyMarker {
			marked = append(marked, q.Label)
		}
	}
	if len(marked) > 0 {
		fmt.Fprintf(w, "Вопросы с ответом по маркеру: %s\n", strings.Join(marked, ", "))
	}
}
