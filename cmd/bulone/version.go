package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.eggybyte.com/bulone/internal/ui"
	"go.eggybyte.com/bulone/internal/version"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show bulone version information",
	Long: `Display version information for the bulone CLI.

This command shows:
  • CLI version, git commit hash, and build timestamp
  • Go runtime version and platform`,
	Args: cobra.NoArgs,
	Run:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = version.GetVersionString()
	rootCmd.SetVersionTemplate(`{{.Version}}
`)
}

func runVersion(cmd *cobra.Command, args []string) {
	if ui.JSONOutput() {
		ui.Result(version.Get(), "%s", version.GetVersionString())
		return
	}
	fmt.Fprintln(ui.Writer(), version.GetFullVersionInfo())
}
