package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/interopcheck/interopcheck/internal/include"
	"github.com/interopcheck/interopcheck/internal/output"
	"github.com/interopcheck/interopcheck/internal/profile"
	"github.com/interopcheck/interopcheck/internal/report"
)

var (
	resolveFormat  string
	resolveOutFile string
	resolveDirs    []string
	resolveOnline  bool
	resolveRepo    string
	resolveReport  string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <profile.json>",
	Short: "Resolve a profile's required profiles into one effective profile",
	Long: `Load a profile, follow its RequiredProfiles and RequiredResourceProfile
declarations across the search directories (and the remote repository when
--online is set), and emit the fully merged effective profile.

Missing dependencies, stale versions and cyclical imports are logged and
skipped; resolution always completes with whatever could be assembled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runResolve(args[0])
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveFormat, "format", "json", "Output format: json, yaml")
	resolveCmd.Flags().StringVarP(&resolveOutFile, "output", "o", "", "Output file path (default: stdout)")
	resolveCmd.Flags().StringSliceVar(&resolveDirs, "dir", nil, "Profile search directories (default: the profile's directory)")
	resolveCmd.Flags().BoolVar(&resolveOnline, "online", false, "Allow fetching required profiles from the remote repository")
	resolveCmd.Flags().StringVar(&resolveRepo, "repository", "", "Remote repository base URL (overrides config)")
	resolveCmd.Flags().StringVar(&resolveReport, "report", "", "Write a JSON provenance report to this path")
}

// runResolve implements the core logic for the resolve command
func runResolve(profilePath string) error {
	slog.Info("loading profile", "path", profilePath)

	doc, err := profile.Load(profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	slog.Info("profile loaded", "name", doc.Name(), "version", doc.Version())

	dirs := resolveDirs
	if len(dirs) == 0 {
		dirs = []string{filepath.Dir(profilePath)}
	}

	resolver := newResolver()
	var chain []string
	included, resourceScoped := resolver.Resolve(doc, dirs, &chain, resolveOnline)

	slog.Info("resolution complete",
		"included", len(included),
		"resource_scoped", len(resourceScoped),
		"fingerprint", profile.Fingerprint(doc))

	if resolveReport != "" {
		if err := writeReport(resolveReport, report.New(doc, included, resourceScoped)); err != nil {
			return err
		}
		slog.Info("wrote provenance report", "file", resolveReport)
	}

	writer, closeWriter, err := outputWriter(resolveOutFile)
	if err != nil {
		return err
	}
	defer closeWriter()

	formatter, err := output.New(resolveFormat, writer)
	if err != nil {
		return err
	}
	if err := formatter.Format(map[string]any(doc)); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// newResolver builds a resolver from flags and configuration. Each
// invocation gets a fresh cache, so independent runs stay isolated.
func newResolver() *include.Resolver {
	repoURL := resolveRepo
	if repoURL == "" {
		repoURL = viper.GetString("repository")
	}
	repo := include.NewRepository(repoURL, viper.GetDuration("timeout"))
	return include.NewResolver(include.NewLocator(include.NewCache(), repo))
}

func writeReport(path string, r *report.Report) error {
	file, err := os.Create(path) //nolint:gosec // user-controlled report path is intentional
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()
	return output.NewJSONFormatter(file, true).Format(r)
}

// outputWriter returns the destination for formatted output and a cleanup
// function.
func outputWriter(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path) //nolint:gosec // user-controlled output file path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	slog.Info("writing output", "file", path)
	return file, func() { _ = file.Close() }, nil
}
