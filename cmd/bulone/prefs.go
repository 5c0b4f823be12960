package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/internal/settings"
	"go.eggybyte.com/bulone/internal/ui"
)

// prefsCmd groups the saved-preference commands.
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change saved project, author and copyright",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a preference (project, author or copyright)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

var prefsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the preferences file path",
	Args:  cobra.NoArgs,
	RunE:  runPrefsPath,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsPathCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	store, err := openPreferences()
	if err != nil {
		return err
	}
	p, err := settings.Load(store)
	if err != nil {
		return err
	}

	if ui.JSONOutput() {
		ui.Result(p, "preferences")
		return nil
	}
	ui.Info("project:   %s", p.Project)
	ui.Info("author:    %s", p.Author)
	ui.Info("copyright: %s", p.Copyright)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !settings.IsKey(key) {
		return errors.Build(errors.CodeInvalidArgument).
			WithOp("prefs.set").
			WithMsgf("unknown preference %q (want one of %v)", key, settings.Keys()).
			Err()
	}

	store, err := openPreferences()
	if err != nil {
		return err
	}
	if err := store.Set(key, value); err != nil {
		return err
	}
	ui.Success("Saved %s", key)
	return nil
}

func runPrefsPath(cmd *cobra.Command, args []string) error {
	store, err := openPreferences()
	if err != nil {
		return err
	}
	ui.Result(map[string]string{"path": store.Path()}, "%s", store.Path())
	return nil
}
