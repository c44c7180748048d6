package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interopcheck/interopcheck/internal/version"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of interopcheck",
	Run: func(_ *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Printf("interopcheck version %s\n", info.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
