// Package cmd provides the command-line interface for the standup tool.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/danielolaszy/standup/internal/config"
	"github.com/danielolaszy/standup/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// cfg is loaded once per invocation by the root pre-run hook.
	cfg      *config.Config
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "standup",
	Short: "Standup prepares your daily standup from notes, tickets and commits",
	Long: `Standup is a CLI tool that gathers what you worked on since the previous
workday and turns it into a standup summary.

It reads your daily notes, your open Jira tickets, your Git commits, your
Timewarrior summary and, optionally, your recent GitHub activity. Tickets
mentioned across these sources are correlated by identifier so the summary
can say which ticket you actually worked on and for how long.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Log.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		closer, err := logging.SetupWithFile(os.Stderr, logging.LogLevel(level), cfg.Log.File)
		if err != nil {
			return err
		}
		closeLog = closer

		logging.Debug("configuration loaded",
			"config_file", cfgFile,
			"ai_provider", cfg.AI.Provider,
			"notes_directory", cfg.Paths.NotesDirectory,
			"git_directories", len(cfg.Git.Directories))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the context handed to the commands.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Add persistent flags that will be available to all commands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml or $HOME/.standup/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", fmt.Sprintf("log level (%s|%s|%s|%s)",
		logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(correlateCmd)
}
