package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"migralint/internal/diag"
	"migralint/internal/diagfmt"
	"migralint/internal/driver"
	"migralint/internal/observ"
	"migralint/internal/project"
	"migralint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <snapshot.migra.json|directory>",
	Short: "Validate class snapshots against the migration rules",
	Long:  `Validate one snapshot file or all *.migra.json files within a directory: every migratable class must carry a serialized-id annotation with a unique (id, version) pair`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("ui", false, "show interactive progress while checking")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache for decoded snapshots")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	withUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	useDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	switch format {
	case "pretty", "json", "sarif", "short":
		// supported
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json, sarif or short)", format)
	}

	manifest, err := project.LoadNearest(startDirFor(path))
	if err != nil {
		return err
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.MaxDiagnostics > 0 {
		maxDiagnostics = manifest.MaxDiagnostics
	}
	if jobs == 0 {
		jobs = manifest.Jobs
	}

	opts := driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Config:         manifest.RulesConfig(),
	}
	if useDiskCache {
		cache, err := driver.OpenDiskCache("migralint")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	timer := observ.NewTimer()
	discoverPhase := timer.Begin("discover")

	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	var files []string
	if st.IsDir() {
		files, err = driver.ListSnapshotFiles(path)
		if err != nil {
			return err
		}
	} else {
		files = []string{path}
	}
	timer.End(discoverPhase, strconv.Itoa(len(files))+" files")

	checkPhase := timer.Begin("check")
	var run *driver.RunResult
	if withUI && isTerminal(os.Stdout) {
		run, err = runCheckWithUI(cmd.Context(), "checking "+path, files, opts)
	} else {
		run, err = driver.CheckFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}
	timer.End(checkPhase, fmt.Sprintf("%d passed, %d flagged", run.Passed, run.Flagged))

	bag := run.Bag
	if noWarnings || warningsAsErrors {
		bag = adjustWarnings(bag, warningsAsErrors)
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(cmd.OutOrStdout(), bag, diagfmt.PrettyOpts{
			Color:     colorEnabled(colorMode, os.Stdout),
			ShowNotes: withNotes,
			Max:       maxDiagnostics,
		})
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%d classes checked: %d passed, %d flagged, %d out of scope\n",
				run.Passed+run.Flagged+run.Skipped, run.Passed, run.Flagged, run.Skipped)
		}
	case "json":
		if err := diagfmt.JSON(cmd.OutOrStdout(), bag, diagfmt.JSONOpts{
			IncludeNotes: withNotes,
			Max:          maxDiagnostics,
		}); err != nil {
			return err
		}
	case "sarif":
		if err := diagfmt.Sarif(cmd.OutOrStdout(), bag, diagfmt.SarifRunMeta{
			ToolName:    "migralint",
			ToolVersion: version.Version,
		}); err != nil {
			return err
		}
	case "short":
		if out := diag.FormatShortDiagnostics(bag.Items(), withNotes); out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
	}

	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if bag.HasErrors() {
		// Диагностики уже напечатаны; не дублируем их текстом ошибки.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		os.Exit(1)
	}
	return nil
}

// adjustWarnings drops or promotes warning diagnostics per the CLI flags.
func adjustWarnings(bag *diag.Bag, promote bool) *diag.Bag {
	out := diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			if !promote {
				continue
			}
			d.Severity = diag.SevError
		}
		out.Add(d)
	}
	return out
}

func startDirFor(path string) string {
	st, err := os.Stat(path)
	if err == nil && st.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
