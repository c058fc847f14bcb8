package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyike/CortexFin/config"
	"github.com/dyike/CortexFin/internal/debug"
	"github.com/dyike/CortexFin/internal/graph"
	"github.com/dyike/CortexFin/internal/memory"
	"github.com/dyike/CortexFin/internal/storage"
	"github.com/dyike/CortexFin/pkg/app"
	"github.com/dyike/CortexFin/pkg/logger"
	"github.com/dyike/CortexFin/pkg/utils"
)

// commandEnv is shared by all subcommands. cfg is filled in PersistentPreRunE.
type commandEnv struct {
	cfg     *config.Config
	verbose bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	env := &commandEnv{}

	rootCmd := &cobra.Command{
		Use:   "cortexfin",
		Short: "CortexFin - 金融多智能体问答",
		Long: `CortexFin 是一个基于大模型的金融多智能体系统。
它将用户的问题路由到数据收集、分析和报告生成等智能体，并返回最终结果。`,
		SilenceUsage:      true,
		PersistentPreRunE: env.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 默认进入交互模式
			return env.runChat(cmd)
		},
	}

	rootCmd.AddCommand(newChatCmd(env))
	rootCmd.AddCommand(newAskCmd(env))
	rootCmd.AddCommand(newHistoryCmd(env))
	rootCmd.AddCommand(newConfigCmd(env))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false, "Show workflow progress")

	return rootCmd
}

func (e *commandEnv) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Env); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	e.cfg = cfg
	return nil
}

func newChatCmd(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.runChat(cmd)
		},
	}
}

func newAskCmd(env *commandEnv) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "ask [QUERY]",
		Short: "Ask a single question and print the answer",
		Long: `Run one query through the workflow without keeping memory.
Example: cortexfin ask "贵州茅台的股价是多少"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.runAsk(cmd, strings.Join(args, " "), save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Save the answer as markdown under DATA_DIR/reports")
	return cmd
}

func newHistoryCmd(env *commandEnv) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently recorded turns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), cmd.OutOrStdout(), env.cfg, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of turns to show")
	return cmd
}

func newConfigCmd(env *commandEnv) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cmd.OutOrStdout(), env.cfg)
		},
	})

	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// version does not need configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "CortexFin %s (%s)\n", Version, Commit)
		},
	}
}

func (e *commandEnv) buildEngine(ctx context.Context, out io.Writer) (*app.Engine, error) {
	if err := debug.NewEinoDebugger(e.cfg).Initialize(ctx); err != nil {
		return nil, err
	}

	var opts []app.Option
	if e.verbose {
		opts = append(opts, app.WithProgress(func(node string) {
			fmt.Fprintln(out, renderProgress(node))
		}))
	}
	return app.BuildEngine(ctx, e.cfg, opts...)
}

func (e *commandEnv) runChat(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	engine, err := e.buildEngine(ctx, out)
	if err != nil {
		return err
	}
	defer engine.Close()

	return NewInteractiveSession(engine.Workflow, cmd.InOrStdin(), out).Start(ctx)
}

func (e *commandEnv) runAsk(cmd *cobra.Command, query string, save bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	engine, err := e.buildEngine(ctx, out)
	if err != nil {
		return err
	}
	defer engine.Close()

	res, err := engine.Workflow.Run(ctx, memory.NewSession(), query)
	fmt.Fprintln(out, renderAnswer(res.Output))
	if err != nil {
		return err
	}
	if save && !res.Fallback {
		path, err := saveAnswer(e.cfg.DataDir, res)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, hintStyle.Render("已保存: "+path))
	}
	return nil
}

func saveAnswer(dataDir string, res *graph.TurnResult) (string, error) {
	name := utils.ReportFileName(time.Now(), string(res.State.FinalGoal))
	return utils.WriteMarkdown(filepath.Join(dataDir, "reports"), name, res.Output+"\n")
}

func runHistory(ctx context.Context, out io.Writer, cfg *config.Config, limit int) error {
	if cfg.TranscriptDB == "" {
		return fmt.Errorf("%w: set TRANSCRIPT_DB to record turns", storage.ErrDisabled)
	}
	store, err := storage.NewTurnStore(cfg.TranscriptDB)
	if err != nil {
		return err
	}
	defer store.Close()

	turns, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		fmt.Fprintln(out, hintStyle.Render("暂无记录。"))
		return nil
	}
	for _, t := range turns {
		fmt.Fprintln(out, renderTurn(t))
	}
	return nil
}

func showConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, titleStyle.Render("CortexFin Configuration"))

	rows := [][2]string{
		{"Environment", cfg.Env},
		{"Log Level", cfg.LogLevel},
		{"Data Directory", cfg.DataDir},
		{"LLM Provider", cfg.LLMProvider},
		{"LLM Model", cfg.LLMModel},
		{"LLM Base URL", cfg.LLMBaseURL},
		{"LLM API Key", configured(cfg.APIKey() != "")},
		{"Primary Source", cfg.PrimarySource},
		{"Longport", configured(cfg.HasLongportCredentials())},
		{"HTTP Timeout", cfg.HTTPTimeout.String()},
		{"Price History Days", fmt.Sprint(cfg.PriceHistoryDays)},
		{"News Limit", fmt.Sprint(cfg.NewsLimit)},
		{"General Chat", fmt.Sprint(cfg.GeneralChatEnabled)},
		{"Transcript DB", cfg.TranscriptDB},
		{"Eino Debug", fmt.Sprint(cfg.EinoDebugEnabled)},
	}
	for _, r := range rows {
		fmt.Fprintln(out, renderField(r[0], r[1]))
	}
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

// exitCommand reports whether the REPL should stop on this line.
func exitCommand(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit", "q":
		return true
	}
	return false
}
