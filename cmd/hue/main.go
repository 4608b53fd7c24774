package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	. "github.com/Protocol-Lattice/hue-playground/src"
	"github.com/Protocol-Lattice/hue-playground/src/config"
	"github.com/Protocol-Lattice/hue-playground/src/logging"
	"github.com/Protocol-Lattice/hue-playground/src/mcpserver"
	"github.com/Protocol-Lattice/hue-playground/src/projects"
)

var version = "dev"

var (
	cfg       config.Config
	logCloser io.Closer

	flagProvider string
	flagModel    string
	flagProject  string
	flagLogLevel string
	flagLogFile  string

	flagPrompt    string
	flagExport    string
	flagExportDir string
)

var rootCmd = &cobra.Command{
	Use:   "hue",
	Short: "Hue - AI coding playground in your terminal",
	Long: `Hue pairs an in-memory example project with an AI coding assistant.

The assistant answers with PLAN:, CODE_UPDATE:, SIMULATING_TEST:, TEST_RESULT:,
TASK_COMPLETE and ERROR: lines which are applied to the project as they are parsed.

Run without arguments to start the interactive playground.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send one prompt without the TUI and print the result",
	Long: `Loads a project, sends a single prompt, prints the transcript and file
actions, and optionally exports the resulting project.

Example:
  hue run --project todoApp --prompt "add a clear completed button" --export ./out`,
	RunE: runHeadless,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the playground as an MCP server over stdio",
	RunE:  runMCP,
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the bundled example projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := projects.Bundled()
		if err != nil {
			return err
		}
		for _, p := range cat.List() {
			marker := " "
			if p.Key == cat.Default {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s (%d files)\n", marker, p.Key, p.Name, len(p.Files))
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagProvider, "provider", "", "AI provider: gemini, openai or lattice (env HUE_PROVIDER)")
	pf.StringVar(&flagModel, "model", "", "model id (env HUE_MODEL)")
	pf.StringVar(&flagProject, "project", "", "project to open (env HUE_PROJECT)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level (env HUE_LOG_LEVEL)")
	pf.StringVar(&flagLogFile, "log-file", "", "log file used by the TUI (env HUE_LOG_FILE)")

	runCmd.Flags().StringVarP(&flagPrompt, "prompt", "p", "", "prompt to send")
	runCmd.Flags().StringVar(&flagExport, "export", "", "write the resulting project to this directory")
	_ = runCmd.MarkFlagRequired("prompt")

	mcpCmd.Flags().StringVar(&flagExportDir, "export-dir", "", "default directory for export_project (env HUE_EXPORT_DIR)")

	rootCmd.AddCommand(runCmd, mcpCmd, projectsCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = flagProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = flagModel
	}
	if cmd.Flags().Changed("project") {
		cfg.Project = flagProject
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The TUI owns the terminal; other commands log to stderr.
	logPath := ""
	if !cmd.HasParent() {
		logPath = cfg.LogFile
	}
	logCloser, err = logging.Setup(cfg.LogLevel, logPath)
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pg, err := NewPlayground(ctx, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	return Run(ctx, pg, Options{
		Provider:  cfg.Provider,
		Model:     cfg.ModelName(),
		Project:   cfg.Project,
		ExportDir: cfg.ExportDir,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pg, err := NewPlayground(ctx, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Running Hue headless...")
	res, err := RunHeadless(ctx, pg, cfg.Project, flagPrompt, flagExport)
	if res != nil {
		PrintHeadless(cmd.OutOrStdout(), res)
	}
	return err
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pg, err := NewPlayground(ctx, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := LoadProject(ctx, pg, cfg.Project); err != nil {
		log.Error().Err(err).Msg("initial project load failed")
	}

	exportDir := cfg.ExportDir
	if cmd.Flags().Changed("export-dir") {
		exportDir = flagExportDir
	}
	log.Info().Str("version", version).Msg("serving MCP over stdio")
	return mcpserver.Serve(mcpserver.New(pg, exportDir, version))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
