package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idlesign/mednsktest/internal/bank"
	"github.com/idlesign/mednsktest/internal/config"
	"github.com/idlesign/mednsktest/internal/logger"
	"github.com/idlesign/mednsktest/internal/store"
)

const description = "Тесты с курсов НГМУ. Консольное приложение"

// console carries the streams of one invocation and whether a quiz was
// completed during it.
type console struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	quizCompleted bool
}

func newRootCmd(c *console) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mednsktest <bank>",
		Short:         description,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return fmt.Errorf("bank name required")
			}
			return runQuiz(cmd, c, args[0])
		},
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Путь к файлу настроек (по умолчанию mednsktest.yaml)")
	pf.String("db", "", "Путь к базе истории сеансов (переопределяет MEDNSKTEST_DB)")
	pf.String("bank_dir", "banks", "Каталог с вопросниками")
	pf.String("progress_dir", ".", "Каталог для файлов прогресса")
	pf.Bool("verbose", false, "Подробный журнал в stderr")

	f := rootCmd.Flags()
	f.Int("questions_limit", 50, "Ограничение количества вопросов на сеанс")
	f.Bool("shuffle_answers", false, "Если флаг задан, ответы будут перетасованы")
	f.Bool("track_progress", false, "Пропускать вопросы, на которые уже отвечали")
	f.String("ui", config.UIAuto, "Режим ввода: auto, plain или tui")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == rootCmd {
			cmd.Long = longDescription(cmd)
		}
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBanksCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

// Run executes the command line and returns the process exit code. A
// completed quiz exits with 1, as do errors.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &console{stdin: stdin, stdout: stdout, stderr: stderr}
	rootCmd := newRootCmd(c)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if c.quizCompleted {
		return 1
	}
	return 0
}

// Execute runs the command line against the process streams.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// longDescription lists the banks found in the configured bank directory.
func longDescription(cmd *cobra.Command) string {
	dir := "banks"
	if cfg, err := loadConfig(cmd); err == nil {
		dir = cfg.BankDir
	}
	names, _ := bank.Discover(dir)
	long := description + "\n\nИмеющиеся вопросники:\n" + strings.Join(names, " ")

	var shadowed []string
	for _, name := range names {
		if isCommandName(cmd.Root(), name) {
			shadowed = append(shadowed, name)
		}
	}
	if len(shadowed) > 0 {
		long += "\n\nВопросники " + strings.Join(shadowed, " ") +
			" совпадают с именами команд и не могут быть запущены. Переименуйте файлы."
	}
	return long
}

// isCommandName reports whether a bank called name would be taken for a
// subcommand of root instead of being run.
func isCommandName(root *cobra.Command, name string) bool {
	switch name {
	case "help", "completion":
		return true
	}
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// resolveDBPath returns the database path using the db setting (--db flag,
// MEDNSKTEST_DB, config file), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
