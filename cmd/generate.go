package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evdash/app"
	"github.com/kilianp07/evdash/infra/logger"
)

var generateFlags struct {
	seed     uint64
	stations int
	sessions int
	out      string
	nearest  string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the station and session snapshots",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.Uint64Var(&generateFlags.seed, "seed", 0, "random seed (overrides config)")
	f.IntVar(&generateFlags.stations, "stations", 0, "number of stations (overrides config)")
	f.IntVar(&generateFlags.sessions, "sessions", 0, "number of sessions (overrides config)")
	f.StringVar(&generateFlags.out, "out", "", "output directory (overrides config)")
	f.StringVar(&generateFlags.nearest, "nearest", "", "nearest neighbour strategy: brute or kdtree")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Generator.Seed = generateFlags.seed
	}
	if flags.Changed("stations") {
		cfg.Generator.Stations = generateFlags.stations
	}
	if flags.Changed("sessions") {
		cfg.Generator.Sessions = generateFlags.sessions
	}
	if flags.Changed("out") {
		cfg.Output.Dir = generateFlags.out
	}
	if flags.Changed("nearest") {
		cfg.Generator.Nearest = generateFlags.nearest
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	m, err := svc.Generate(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, m.StationsPath); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, m.SessionsPath)
	return err
}
