package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"migralint/internal/project"
	"migralint/internal/rules"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter migralint.toml",
	Long: `Write a starter migralint.toml into the given directory (or the current
directory when omitted). The manifest documents the tunable marker names and
per-rule severity overrides.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else if filepath.IsAbs(args[0]) {
		target = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = filepath.Join(wd, args[0])
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("already initialized: %s exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	manifest := fmt.Sprintf(`[analysis]
capability = %q
annotation = %q
jobs = 0
max_diagnostics = 100

# Per-rule severity overrides (error|warning|info):
# [severity]
# duplicate_version = "warning"
`, rules.DefaultCapability, rules.DefaultAnnotation)

	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", manifestPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifestPath)
	return nil
}
