package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interopcheck/interopcheck/internal/profile"
)

// fingerprintCmd represents the fingerprint command
var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <profile.json>",
	Short: "Print the content fingerprint of a profile document",
	Long: `Print the md5 fingerprint of a profile's canonical serialization.
Useful for pinning an effective profile in CI: resolve once, record the
fingerprint, and fail the pipeline when it drifts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		doc, err := profile.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		fmt.Println(profile.Fingerprint(doc))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)
}
