package main

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/internal/render"
	"go.eggybyte.com/bulone/internal/templates"
	"go.eggybyte.com/bulone/internal/ui"
)

// templatesCmd groups template inspection commands.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the effective template set",
	Long: `Inspect the templates generate would use: the built-in set, overlaid by
--templates or the template_dir config value.

Examples:
  bulone templates list
  bulone templates check --templates ./my-templates`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available template keys",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify every required template exists and uses only known tokens",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesCheck,
}

var tplDir string

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesCheckCmd)

	templatesCmd.PersistentFlags().StringVar(&tplDir, "templates", "", "Template directory layered over the built-in set")
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	store, err := buildStore(firstNonEmpty(tplDir, cfg.TemplateDir))
	if err != nil {
		return err
	}
	keys, err := store.Keys()
	if err != nil {
		return err
	}

	required := templates.Required()
	if ui.JSONOutput() {
		ui.Result(keys, "%d templates", len(keys))
		return nil
	}
	for _, key := range keys {
		marker := " "
		if slices.Contains(required, key) {
			marker = "*"
		}
		ui.Info("%s %s", marker, key)
	}
	return nil
}

// runTemplatesCheck reports missing required templates and placeholders that
// no token will ever fill.
func runTemplatesCheck(cmd *cobra.Command, args []string) error {
	store, err := buildStore(firstNonEmpty(tplDir, cfg.TemplateDir))
	if err != nil {
		return err
	}
	if err := templates.Check(store); err != nil {
		return err
	}

	unknown := lintPlaceholders(store)
	if len(unknown) > 0 {
		for _, key := range templates.Required() {
			if names, ok := unknown[key]; ok {
				ui.Warning("template %q uses unknown tokens: %s", key, strings.Join(names, ", "))
			}
		}
		return errors.Build(errors.CodeUnresolvedToken).
			WithOp("templates.check").
			WithMsgf("%d templates use unknown tokens", len(unknown)).
			Err()
	}

	ui.Success("All %d templates present; tokens: %s", len(templates.Required()), strings.Join(render.Known(), ", "))
	return nil
}

// lintPlaceholders maps template keys to placeholder names outside the
// recognized token set.
func lintPlaceholders(store templates.Store) map[string][]string {
	unknown := make(map[string][]string)
	for _, key := range templates.Required() {
		text, err := store.Load(key)
		if err != nil {
			continue
		}
		for _, name := range render.Placeholders(text) {
			if !render.IsKnown(name) {
				unknown[key] = append(unknown[key], name)
			}
		}
	}
	return unknown
}
