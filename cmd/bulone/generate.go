package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"go.eggybyte.com/bulone/configx"
	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/internal/form"
	"go.eggybyte.com/bulone/internal/generator"
	"go.eggybyte.com/bulone/internal/settings"
	"go.eggybyte.com/bulone/internal/templates"
	"go.eggybyte.com/bulone/internal/ui"
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate [module-name]",
	Short: "Generate a module from templates",
	Long: `Generate one file per module part under <output>/<module-name>.

Project, author and copyright fall back to the saved preferences and are saved
again after a successful run, unless --no-save is given. Existing files are
overwritten. A failed run leaves the files it already wrote in place.

Examples:
  bulone generate Login -o ./Modules --project MyApp --author Jane --copyright "2024 Jane"
  bulone generate Login --dry-run
  bulone generate -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	genOutput      string
	genProject     string
	genAuthor      string
	genCopyright   string
	genTemplates   string
	genExt         string
	genStrict      bool
	genDryRun      bool
	genInteractive bool
	genNoSave      bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genOutput, "output", "o", ".", "Directory the module directory is created in")
	generateCmd.Flags().StringVar(&genProject, "project", "", "Project name (default: saved preference)")
	generateCmd.Flags().StringVar(&genAuthor, "author", "", "Author (default: saved preference)")
	generateCmd.Flags().StringVar(&genCopyright, "copyright", "", "Copyright holder text (default: saved preference)")
	generateCmd.Flags().StringVar(&genTemplates, "templates", "", "Template directory layered over the built-in set")
	generateCmd.Flags().StringVar(&genExt, "ext", "", "Extension of generated files (default from config: swift)")
	generateCmd.Flags().BoolVar(&genStrict, "strict", false, "Fail on placeholders without a value")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Render without writing files")
	generateCmd.Flags().BoolVarP(&genInteractive, "interactive", "i", false, "Fill the fields in a terminal form")
	generateCmd.Flags().BoolVar(&genNoSave, "no-save", false, "Do not remember project, author and copyright")
}

// runGenerate executes the generate command.
//
// Parameters:
//   - cmd: Cobra command
//   - args: Optional module name
//
// Returns:
//   - error: Validation, template or filesystem error
//
// Concurrency:
//   - Single-threaded; the form (if any) returns before generation starts
func runGenerate(cmd *cobra.Command, args []string) error {
	prefs, err := openPreferences()
	if err != nil {
		return err
	}
	saved, err := settings.Load(prefs)
	if err != nil {
		return err
	}

	values := form.Values{
		OutputPath:  genOutput,
		ProjectName: firstNonEmpty(genProject, saved.Project),
		Author:      firstNonEmpty(genAuthor, saved.Author),
		Copyright:   firstNonEmpty(genCopyright, saved.Copyright),
	}
	if len(args) == 1 {
		values.ModuleName = args[0]
	}

	if genInteractive {
		if ui.NonInteractive() {
			return errors.New(errors.CodeInvalidArgument, "--interactive cannot be combined with --non-interactive")
		}
		values, err = form.Run(values, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	spec, err := specFromValues(values)
	if err != nil {
		return err
	}

	store, err := buildStore(firstNonEmpty(genTemplates, cfg.TemplateDir))
	if err != nil {
		return err
	}

	gen := generator.New(store,
		generator.WithFilesystem(osfs.New("/")),
		generator.WithExtension(firstNonEmpty(genExt, cfg.Extension)),
		generator.WithDateLayout(cfg.DateLayout),
		generator.WithStrict(genStrict || cfg.Strict),
		generator.WithLogger(logger),
	)

	if genDryRun {
		return planModule(gen, spec)
	}

	moduleDir := filepath.Join(spec.OutputPath, spec.ModuleName)
	if genInteractive {
		if _, err := os.Stat(moduleDir); err == nil && !ui.Confirm("%s exists. Overwrite generated files?", moduleDir) {
			ui.Warning("Generation cancelled")
			return nil
		}
	}

	res, err := gen.Generate(spec)
	if err != nil {
		return err
	}

	for i, f := range res.Files {
		ui.Step(i+1, len(res.Files), "%s", f.AbsPath)
	}
	ui.Result(res, "Module %s generated in %s", res.Module, res.Root)

	if !genNoSave {
		if err := settings.Save(prefs, settings.Preferences{
			Project:   spec.ProjectName,
			Author:    spec.Author,
			Copyright: spec.Copyright,
		}); err != nil {
			ui.Warning("Preferences not saved: %v", err)
		}
	}
	return nil
}

// planModule renders the module without writing and lists the files.
func planModule(gen *generator.Generator, spec generator.Spec) error {
	files, err := gen.Plan(spec)
	if err != nil {
		return err
	}

	for i, f := range files {
		ui.Step(i+1, len(files), "%s (%d bytes)", f.AbsPath, len(f.Content))
		ui.Debug("%s", f.Content)
	}
	ui.Result(files, "Dry run: %d files would be written for module %s", len(files), spec.ModuleName)
	return nil
}

// specFromValues checks the collected values and turns them into a generator
// spec with an absolute output path.
func specFromValues(v form.Values) (generator.Spec, error) {
	v = trimValues(v)
	if msg := form.Validate(v); msg != "" {
		return generator.Spec{}, errors.Build(errors.CodeInvalidArgument).
			WithOp("generate").
			WithMsgf("%s (missing: %s)", msg, strings.Join(missingFields(v), ", ")).
			Err()
	}

	abs, err := filepath.Abs(v.OutputPath)
	if err != nil {
		return generator.Spec{}, errors.Wrapf(errors.CodeInvalidArgument, "generate", err, "%s", form.MsgPathMissing)
	}

	spec := generator.Spec{
		ModuleName:  v.ModuleName,
		OutputPath:  abs,
		ProjectName: v.ProjectName,
		Author:      v.Author,
		Copyright:   v.Copyright,
	}
	if err := generator.Validate(spec); err != nil {
		var verr *configx.ValidationError
		if errors.As(err, &verr) && verr.Failed("OutputPath") {
			return generator.Spec{}, errors.Build(errors.CodeInvalidArgument).
				WithOp("generate").
				WithPath(abs).
				WithMsg("output path is not an existing directory").
				WithErr(err).
				Err()
		}
		return generator.Spec{}, err
	}
	return spec, nil
}

// trimValues strips surrounding whitespace from every field.
func trimValues(v form.Values) form.Values {
	return form.Values{
		ModuleName:  strings.TrimSpace(v.ModuleName),
		OutputPath:  strings.TrimSpace(v.OutputPath),
		ProjectName: strings.TrimSpace(v.ProjectName),
		Author:      strings.TrimSpace(v.Author),
		Copyright:   strings.TrimSpace(v.Copyright),
	}
}

// missingFields names the empty values in flag terms.
func missingFields(v form.Values) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"module-name", v.ModuleName},
		{"--output", v.OutputPath},
		{"--project", v.ProjectName},
		{"--author", v.Author},
		{"--copyright", v.Copyright},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// buildStore returns the built-in templates, overlaid by dir when given.
func buildStore(dir string) (templates.Store, error) {
	if dir == "" {
		return templates.Embedded(), nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "templates", err)
	}
	user, err := templates.NewDirStore(osfs.New("/"), abs)
	if err != nil {
		return nil, err
	}
	ui.Debug("Using templates from %s", abs)
	return templates.NewLayered(user, templates.Embedded()), nil
}

// openPreferences opens the preferences file from config or its default path.
func openPreferences() (*settings.FileStore, error) {
	path := cfg.PrefsFile
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return settings.NewFileStore(osfs.New("/"), path), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
