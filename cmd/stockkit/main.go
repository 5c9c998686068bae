package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"StockKit/internal/bundle"
	"StockKit/internal/config"
	"StockKit/internal/pip"
	"StockKit/internal/recorder"
)

// app carries what every subcommand needs once config is loaded.
type app struct {
	cfgPath string
	cfg     *config.Config
	rec     recorder.Recorder
	out     io.Writer
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.cfgPath == "" {
		a.cfgPath = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			a.cfgPath = v
		}
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	a.cfg = cfg
	a.out = cmd.OutOrStdout()

	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			a.rec = recorder.NewNoopRecorder()
		} else {
			a.rec = sr
		}
	} else {
		a.rec = recorder.NewNoopRecorder()
	}
	return nil
}

func (a *app) close() {
	if a.rec != nil {
		if err := a.rec.Close(); err != nil {
			log.Printf("[WARN] close recorder: %v", err)
		}
	}
}

func (a *app) doctor() *bundle.Doctor {
	return bundle.NewDoctor(pip.NewClient(a.cfg.Bundle.Python, nil), a.cfg.NoCache(), a.rec)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "stockkit",
		Short: "Fetch and analyse market data, and keep the OpenBB install consistent",
		Long: "stockkit fetches daily prices with retries, falls back to a local CSV import,\n" +
			"prints basic statistics and saves a price chart. It also checks and repairs\n" +
			"the installed OpenBB package set.\n\nRun without a subcommand for an interactive menu.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd.Context(), a)
		},
	}
	cobra.OnFinalize(a.close)
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default configs/config.yaml or $CONFIG_PATH)")

	root.AddCommand(
		newFetchCmd(a),
		newImportCmd(a),
		newCheckCmd(a),
		newReconcileCmd(a),
		newVerifyCmd(a),
		newWatchCmd(a),
	)
	return root
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Printf("[FATAL] %v", err)
		os.Exit(1)
	}
}
