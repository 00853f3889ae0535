package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"migralint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "migralint",
	Short: "Validator for migratable-class serialization metadata",
	Long:  `migralint checks class snapshots exported by a compiler host for missing or conflicting serialized-id metadata`,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color tri-state against the output terminal.
func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}
