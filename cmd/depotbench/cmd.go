package main

import (
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TheBitDrifter/depot"
)

const (
	flagEntities = "entities"
	flagConfig   = "config"
	flagProfile  = "profile"
	flagOut      = "out"
)

func newRootCmd(logger *zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "depotbench",
		Short:         "Benchmark depot storage operations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(logger))
	return root
}

func newRunCmd(logger *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every benchmark scenario once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entities, err := cmd.Flags().GetInt(flagEntities)
			if err != nil {
				return err
			}
			if entities <= 0 {
				return eris.Errorf("--%s must be positive, got %d", flagEntities, entities)
			}
			path, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			cfg, err := depot.LoadConfig(path)
			if err != nil {
				return err
			}
			mode, err := cmd.Flags().GetString(flagProfile)
			if err != nil {
				return err
			}
			out, err := cmd.Flags().GetString(flagOut)
			if err != nil {
				return err
			}

			stop, err := startProfile(mode, out)
			if err != nil {
				return err
			}
			defer stop()

			runLogger := logger.Level(cfg.Level())
			results, err := runBenchmarks(cfg, entities)
			if err != nil {
				return err
			}
			for _, r := range results {
				runLogger.Info().
					Str("scenario", r.Name).
					Int("entities", entities).
					Dur("elapsed", r.Elapsed).
					Msg("benchmark")
			}
			return nil
		},
	}
	cmd.Flags().Int(flagEntities, 100_000, "number of entities per scenario")
	cmd.Flags().String(flagConfig, "", "optional YAML config file")
	cmd.Flags().String(flagProfile, "", "profile to record: cpu or mem")
	cmd.Flags().String(flagOut, ".", "directory for profile output")
	return cmd
}

func startProfile(mode, out string) (func(), error) {
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		p := profile.Start(profile.CPUProfile, profile.ProfilePath(out), profile.NoShutdownHook, profile.Quiet)
		return p.Stop, nil
	case "mem":
		p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath(out), profile.NoShutdownHook, profile.Quiet)
		return p.Stop, nil
	default:
		return nil, eris.Errorf("unknown profile mode %q", mode)
	}
}
