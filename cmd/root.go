// Package cmd holds the lookout command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"lookout/internal/config"
	"lookout/internal/eventbus"
	"lookout/internal/logging"
	"lookout/internal/lookup"
	"lookout/internal/stats"
	"lookout/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noMouse bool
)

var rootCmd = &cobra.Command{
	Use:   "lookout",
	Short: "Find GitHub users from the terminal",
	Long: `lookout searches GitHub users as you type. Lookups wait for a pause in
typing, and only the answer to the latest query is ever shown.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the command line
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging with caller info")
	rootCmd.Flags().BoolVar(&noMouse, "no-mouse", false, "disable mouse support")
}

// loadConfig resolves the config file and layers it over the defaults
func loadConfig(bus eventbus.EventBus) (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigServiceWithBus(bus, cfgFile)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, svc, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()

	cfg, svc, err := loadConfig(bus)
	if err != nil {
		return err
	}
	if noMouse {
		cfg.UI.Mouse = false
	}

	closeLog, err := logging.Init(cfg.Log, verbose)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing log: %v\n", err)
		}
	}()

	session := stats.NewSession(bus)
	defer session.Stop()

	unsubscribe := bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Warn("reported error", "message", event.Message, "error", event.Err)
		}
	})
	defer unsubscribe()

	model := ui.NewModel(ui.Options{
		Config:     cfg,
		ConfigPath: svc.Path(),
		Client:     lookup.FromConfig(cfg),
		Bus:        bus,
		Stats:      session,
		Version:    Version,
	})
	defer model.Dispose()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	log.Info("starting ui", "config", svc.Path(), "endpoint", cfg.Search.Endpoint, "mouse", cfg.UI.Mouse)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("interrupted")
			return nil
		}
		return fmt.Errorf("running ui: %w", err)
	}

	s := session.Snapshot()
	log.Info("session finished", "searches", s.Searches(), "failed", s.SearchesFailed, "dialogs", s.DialogsOpened)
	return nil
}
