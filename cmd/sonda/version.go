package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/sonda"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sonda",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sonda version %s\n", strings.TrimSpace(sonda.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
