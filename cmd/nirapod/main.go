package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/nirapod/internal/app"
	"github.com/ganot/nirapod/internal/config"
	"github.com/ganot/nirapod/internal/logging"
	"github.com/ganot/nirapod/internal/mcp"
	"github.com/ganot/nirapod/internal/tui"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	logPath  string
	noSplash bool
	noSeed   bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "nirapod",
		Short: "Personal safety companion for the terminal",
		Long: `Nirapod keeps your emergency contacts, ride tracking and safety
resources in one place. Press ! anywhere to alert your emergency contacts.`,
		Example: `
nirapod
nirapod --log-path /tmp/nirapod.log --log-level debug
NIRAPOD_DB_PATH=~/.nirapod/nirapod.db nirapod --no-splash
`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&o.logPath, "log-path", "", "write logs to this file")
	cmd.Flags().BoolVar(&o.noSplash, "no-splash", false, "skip the splash screen")
	cmd.Flags().BoolVar(&o.noSeed, "no-seed", false, "start with empty panels")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "nirapod", mcp.Version)
		},
	})
	return cmd
}

func run(ctx context.Context, o *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logPath != "" {
		cfg.Log.Path = o.logPath
	}
	if o.noSeed {
		cfg.Sample.Seed = false
	}

	// The terminal belongs to the UI, so logs only go to a file.
	logger, logCloser, err := logging.New(cfg.Log.Level, cfg.Log.Path, io.Discard)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logCloser.Close()

	a, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	splash := cfg.Timing.SplashDelay
	if o.noSplash || splash == 0 {
		splash = -1
	}
	model := tui.New(ctx, tui.Services{
		Contacts:  a.Contacts,
		Alerts:    a.Alerts,
		Rides:     a.Rides,
		Resources: a.Resources,
	}, tui.Options{SplashDelay: splash, Logger: logger})

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
