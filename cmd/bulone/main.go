// Package main provides the bulone CLI entry point.
//
// Overview:
//   - Responsibility: CLI command parsing and execution
//   - Key Types: Cobra command structure
//   - Concurrency Model: Single-threaded CLI execution
//   - Error Semantics: Exit code 1 and a formatted error message on failure
//   - Performance Notes: Configuration is loaded once per invocation
//
// Usage:
//
//	bulone [command] [flags]
package main

import (
	"os"

	"github.com/spf13/cobra"

	"go.eggybyte.com/bulone/core/log"
	"go.eggybyte.com/bulone/internal/ui"
)

var (
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	configPath     string

	// Populated by the root PersistentPreRunE.
	cfg    Config
	logger log.Logger = log.Nop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bulone",
	Short: "Module scaffolding from templates",
	Long: `bulone scaffolds source-code modules from templates.

Given a module name, project, author and copyright, it renders one file per
module part (data manager, interactor, presenter, view, wireframe, protocols)
into outputPath/moduleName, substituting {{ token }} placeholders.

Examples:
  bulone generate Login -o ./Modules --project MyApp --author Jane --copyright "2024 Jane"
  bulone generate -i
  bulone templates check --templates ./my-templates`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.SetVerbose(verbose)
		ui.SetNonInteractive(nonInteractive)
		ui.SetJSONOutput(jsonOutput)

		loaded, err := loadConfig(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = newLogger(cfg, verbose, cmd.ErrOrStderr())
		return nil
	},
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("Command failed: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/bulone/config.yaml)")
}

func main() {
	Execute()
}
