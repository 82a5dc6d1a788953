// Package cmd wires the command line to the application.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bigtrip/internal/api"
	"bigtrip/internal/config"
	"bigtrip/internal/store"
	"bigtrip/internal/ui"
)

var (
	flagConfig   string
	flagEndpoint string
	flagToken    string
	flagDemo     bool
)

var rootCmd = &cobra.Command{
	Use:   "bigtrip",
	Short: "Plan a trip from your terminal",
	Long: `bigtrip is a terminal client for the Big Trip planner.

It lists your route points, lets you filter and sort them, edit them
inline and sync every change with the backend. Run with --demo to
explore on generated data without a backend.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var svc api.Service
		if flagDemo || cfg.Demo {
			svc = api.NewFixtureService(cfg.DemoPoints)
		} else {
			svc = api.NewClient(cfg.Endpoint, cfg.Authorization)
		}

		trip := store.NewTripModel(svc)
		program := tea.NewProgram(ui.New(trip), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run UI: %w", err)
		}
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flagEndpoint != "" {
		cfg.Endpoint = flagEndpoint
	}
	if token := os.Getenv("BIGTRIP_TOKEN"); token != "" {
		cfg.Authorization = token
	}
	if flagToken != "" {
		cfg.Authorization = flagToken
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to config file (default ~/.bigtrip.yaml)")
	rootCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "backend endpoint URL")
	rootCmd.Flags().StringVar(&flagToken, "token", "", "authorization header value (overrides BIGTRIP_TOKEN)")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "run against generated in-memory data")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
