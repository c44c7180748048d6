package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/interopcheck/interopcheck/internal/output"
	"github.com/interopcheck/interopcheck/internal/profile"
	"github.com/interopcheck/interopcheck/internal/schema"
)

var (
	validateSchema    string
	validateFormat    string
	validateOutFile   string
	validateDirs      []string
	validateOnline    bool
	validateNoResolve bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <profile.json>",
	Short: "Check a profile for conformance against a JSON schema",
	Long: `Resolve a profile's required profiles, then validate the effective
profile against the governing JSON schema. Exits non-zero when the profile
does not conform. Use --no-resolve to validate the document as written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "JSON schema file (required)")
	_ = validateCmd.MarkFlagRequired("schema")
	validateCmd.Flags().StringVar(&validateFormat, "format", "json", "Output format: json, sarif")
	validateCmd.Flags().StringVarP(&validateOutFile, "output", "o", "", "Output file path (default: stdout)")
	validateCmd.Flags().StringSliceVar(&validateDirs, "dir", nil, "Profile search directories (default: the profile's directory)")
	validateCmd.Flags().BoolVar(&validateOnline, "online", false, "Allow fetching required profiles from the remote repository")
	validateCmd.Flags().BoolVar(&validateNoResolve, "no-resolve", false, "Validate the profile as written, without resolving includes")
}

// runValidate implements the core logic for the validate command
func runValidate(profilePath string) error {
	doc, err := profile.Load(profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if !validateNoResolve {
		dirs := validateDirs
		if len(dirs) == 0 {
			dirs = []string{filepath.Dir(profilePath)}
		}
		resolver := newResolver()
		var chain []string
		included, resourceScoped := resolver.Resolve(doc, dirs, &chain, validateOnline)
		slog.Info("resolution complete",
			"included", len(included), "resource_scoped", len(resourceScoped))
	}

	validator, err := schema.CompileFile(validateSchema)
	if err != nil {
		return err
	}

	result := validator.Validate(doc)

	writer, closeWriter, err := outputWriter(validateOutFile)
	if err != nil {
		return err
	}
	defer closeWriter()

	switch validateFormat {
	case "json":
		if err := output.NewJSONFormatter(writer, true).Format(result); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
	case "sarif":
		if err := output.NewSARIFFormatter(writer, profilePath).Format(&result); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s (supported: json, sarif)", validateFormat)
	}

	if !result.Conformant {
		return fmt.Errorf("profile does not conform to schema: %d findings", len(result.Findings))
	}
	slog.Info("profile conforms to schema", "profile", doc.Name())
	return nil
}
