package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aretw0/sonda/pkg/gate"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Print the effective gate settings",
	Long:  `Resolves the settings file, the SONDA_* environment variables and flags, then prints the resulting gate and probe profiles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		probes, err := settings.ResolveProbes()
		if err != nil {
			return err
		}

		g := gate.Default()
		names := make([]string, 0, len(probes))
		for name := range probes {
			names = append(names, name)
		}
		sort.Strings(names)

		out := map[string]any{
			"threshold":   g.Threshold(),
			"enabled":     g.Enabled(),
			"caller_tags": g.CallerTagsEnabled(),
			"dev_mode":    g.DevMode(),
			"active":      g.Active(),
			"probes":      names,
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to print gate: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gateCmd)
}
