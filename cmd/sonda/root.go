package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sonda/internal/logging"
	"github.com/aretw0/sonda/pkg/config"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/ports"
	"github.com/aretw0/sonda/pkg/sink"
)

var rootCmd = &cobra.Command{
	Use:   "sonda",
	Short: "Sonda instruments reactive streams and state stores",
	Long:  `Sonda logs stream lifecycles, dispatched actions and state diffs behind a process-wide severity gate.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "sonda.yaml", "Settings file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().String("threshold", "", "Override the severity threshold (none, info, debug, error)")
}

// loadSettings resolves file, environment and flag values, in that order,
// and applies them to the process-wide gate.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}

	if threshold, _ := cmd.Flags().GetString("threshold"); threshold != "" {
		settings.Threshold = threshold
		if _, err := settings.Severity(); err != nil {
			return config.Settings{}, err
		}
	}

	if err := settings.Apply(gate.Default()); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func newLogger(settings config.Settings) *slog.Logger {
	return logging.New(logging.ParseLevel(settings.Log.Level), settings.Log.Format)
}

// resolveSink registers logger as the "slog" sink and returns the sink named
// by log.sink.
func resolveSink(settings config.Settings, logger *slog.Logger) (ports.Sink, error) {
	sink.Register("slog", logger)
	name := settings.Log.Sink
	if name == "" {
		name = "slog"
	}
	return sink.Get(name)
}
