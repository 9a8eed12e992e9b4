package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskfocus/internal/logging"
	"github.com/sandeepkv93/taskfocus/internal/store"
	"github.com/sandeepkv93/taskfocus/internal/update"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskfocus failed: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	cmd := &cobra.Command{
		Use:           "taskfocus",
		Short:         "Terminal task list with per-task pomodoro timers",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.WorkMinutes <= 0 || cfg.BreakMinutes <= 0 {
				return fmt.Errorf("work and break minutes must be positive, got %d/%d", cfg.WorkMinutes, cfg.BreakMinutes)
			}
			return run(cfg)
		},
	}

	// Flag defaults come from the environment, so an explicit flag wins.
	cmd.Flags().IntVarP(&cfg.WorkMinutes, "work-minutes", "w", cfg.WorkMinutes, "Default work phase length for new tasks")
	cmd.Flags().IntVarP(&cfg.BreakMinutes, "break-minutes", "b", cfg.BreakMinutes, "Default break phase length for new tasks")
	cmd.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Append logs to this file (disabled when empty)")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&cfg.ExportPath, "export-path", cfg.ExportPath, "Default SQLite file for the export command")

	return cmd
}

func run(cfg update.RuntimeConfig) error {
	logger, closeLog, err := logging.Open(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting", "work_minutes", cfg.WorkMinutes, "break_minutes", cfg.BreakMinutes, "export_path", cfg.ExportPath)
	s := store.New(store.WithLogger(logger))
	program := tea.NewProgram(update.NewModel(s, cfg, logger))
	if _, err := program.Run(); err != nil {
		logger.Error("program exited with error", "err", err)
		return err
	}
	logger.Info("stopped")
	return nil
}
