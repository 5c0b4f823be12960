package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/core/log"
	"go.eggybyte.com/bulone/internal/catalog"
	"go.eggybyte.com/bulone/internal/ui"
	"go.eggybyte.com/bulone/testingx"
)

// cliEnv isolates one CLI invocation: config and preferences live under a
// temporary home, and ui output is captured.
type cliEnv struct {
	home   string
	prefs  string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	home := t.TempDir()
	env := &cliEnv{
		home:   home,
		prefs:  filepath.Join(home, "prefs.yaml"),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("BULONE_PREFS_FILE", env.prefs)
	t.Cleanup(ui.Reset)
	return env
}

// run executes the root command with args after resetting global flag state.
func (e *cliEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags()
	e.stdout.Reset()
	e.stderr.Reset()
	ui.SetOutput(e.stdout, e.stderr, strings.NewReader(""))

	rootCmd.SetArgs(args)
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)
	return rootCmd.Execute()
}

func resetFlags() {
	verbose, nonInteractive, jsonOutput, configPath = false, false, false, ""
	cfg, logger = Config{}, log.Nop()

	genOutput, genProject, genAuthor, genCopyright = ".", "", "", ""
	genTemplates, genExt = "", ""
	genStrict, genDryRun, genInteractive, genNoSave = false, false, false, false
	tplDir = ""
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertModuleFiles(t *testing.T, out, module, ext string) {
	t.Helper()
	for _, p := range catalog.All() {
		path := filepath.Join(out, module, filepath.FromSlash(p.Directory()), p.FileStem(module)+"."+ext)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s: %v", path, err)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	env := newCLIEnv(t)
	out := t.TempDir()

	err := env.run(t, "generate", "Login", "-o", out,
		"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
	testingx.AssertNoError(t, err)
	assertModuleFiles(t, out, "Login", "swift")

	data, err := os.ReadFile(filepath.Join(out, "Login", "Presenter", "LoginPresenter.swift"))
	testingx.AssertNoError(t, err)
	text := string(data)
	for _, want := range []string{"LoginPresenter", "MyApp", "Jane", "2024 Jane"} {
		if !strings.Contains(text, want) {
			t.Errorf("presenter should contain %q", want)
		}
	}
	if !strings.Contains(env.stdout.String(), "Module Login generated") {
		t.Errorf("missing success message in %q", env.stdout.String())
	}

	saved, err := os.ReadFile(env.prefs)
	testingx.AssertNoError(t, err)
	if !strings.Contains(string(saved), "author: Jane") {
		t.Errorf("preferences not saved: %q", saved)
	}

	t.Run("reuses saved preferences", func(t *testing.T) {
		testingx.AssertNoError(t, env.run(t, "generate", "Settings", "-o", out))
		assertModuleFiles(t, out, "Settings", "swift")
	})
}

func TestGenerateNoSave(t *testing.T) {
	env := newCLIEnv(t)
	out := t.TempDir()

	err := env.run(t, "generate", "Login", "-o", out, "--no-save",
		"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
	testingx.AssertNoError(t, err)
	if _, err := os.Stat(env.prefs); !os.IsNotExist(err) {
		t.Errorf("preferences file should not exist, stat err = %v", err)
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    func(out string) []string
		wantMsg string
	}{
		{
			name: "missing module name",
			args: func(out string) []string {
				return []string{"generate", "-o", out, "--project", "P", "--author", "A", "--copyright", "C"}
			},
			wantMsg: "All fields are required",
		},
		{
			name: "missing author",
			args: func(out string) []string {
				return []string{"generate", "Login", "-o", out, "--project", "P", "--copyright", "C"}
			},
			wantMsg: "--author",
		},
		{
			name: "output directory missing",
			args: func(out string) []string {
				return []string{"generate", "Login", "-o", filepath.Join(out, "nope"), "--project", "P", "--author", "A", "--copyright", "C"}
			},
			wantMsg: "output path is not an existing directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			out := t.TempDir()
			err := env.run(t, tt.args(out)...)
			testingx.AssertCode(t, err, errors.CodeInvalidArgument)
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
			entries, _ := os.ReadDir(out)
			if len(entries) != 0 {
				t.Errorf("nothing should be written, found %d entries", len(entries))
			}
		})
	}
}

func TestGenerateTrimsValues(t *testing.T) {
	env := newCLIEnv(t)
	out := t.TempDir()

	err := env.run(t, "generate", " Login ", "-o", out,
		"--project", " MyApp ", "--author", "Jane\t", "--copyright", " 2024 Jane")
	testingx.AssertNoError(t, err)
	assertModuleFiles(t, out, "Login", "swift")

	if _, err := os.Stat(filepath.Join(out, " Login ")); !os.IsNotExist(err) {
		t.Errorf("module directory should not keep surrounding spaces, stat err = %v", err)
	}
	saved, err := os.ReadFile(env.prefs)
	testingx.AssertNoError(t, err)
	if !strings.Contains(string(saved), "project: MyApp\n") {
		t.Errorf("saved preferences should be trimmed: %q", saved)
	}
}

func TestGenerateDryRun(t *testing.T) {
	env := newCLIEnv(t)
	out := t.TempDir()

	err := env.run(t, "generate", "Login", "-o", out, "--dry-run",
		"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
	testingx.AssertNoError(t, err)

	if _, err := os.Stat(filepath.Join(out, "Login")); !os.IsNotExist(err) {
		t.Errorf("dry run created the module directory, stat err = %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Dry run: 6 files") {
		t.Errorf("unexpected output %q", env.stdout.String())
	}
	if _, err := os.Stat(env.prefs); !os.IsNotExist(err) {
		t.Errorf("dry run should not save preferences")
	}
}

func TestGenerateJSONOutput(t *testing.T) {
	env := newCLIEnv(t)
	out := t.TempDir()

	err := env.run(t, "--json", "generate", "Login", "-o", out,
		"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
	testingx.AssertNoError(t, err)

	lines := strings.Split(strings.TrimSpace(env.stdout.String()), "\n")
	var msg struct {
		Level string `json:"level"`
		Data  struct {
			Module string `json:"module"`
			Files  []struct {
				Path string `json:"path"`
			} `json:"files"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &msg); err != nil {
		t.Fatalf("last line is not JSON: %v", err)
	}
	if msg.Data.Module != "Login" || len(msg.Data.Files) != catalog.Len() {
		t.Errorf("unexpected result %+v", msg.Data)
	}
	if msg.Data.Files[0].Path != "DataManager/Local/LoginDataManager.swift" {
		t.Errorf("first file = %q", msg.Data.Files[0].Path)
	}
}

func TestGenerateCustomTemplates(t *testing.T) {
	env := newCLIEnv(t)
	out := t.TempDir()
	tpl := filepath.Join(env.home, "templates")
	writeFile(t, filepath.Join(tpl, "view.mustache"), "custom {{ filename }}")

	err := env.run(t, "generate", "Login", "-o", out, "--templates", tpl,
		"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
	testingx.AssertNoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "Login", "View", "LoginView.swift"))
	testingx.AssertNoError(t, err)
	if !strings.HasSuffix(string(data), "\ncustom LoginView") {
		t.Errorf("view should use the override, got %q", data)
	}
}

func TestGenerateStrict(t *testing.T) {
	env := newCLIEnv(t)
	out := t.TempDir()
	tpl := filepath.Join(env.home, "templates")
	writeFile(t, filepath.Join(tpl, "interactor.mustache"), "{{ filename }} {{ unknown }}")

	err := env.run(t, "generate", "Login", "-o", out, "--templates", tpl, "--strict",
		"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
	testingx.AssertCode(t, err, errors.CodeUnresolvedToken)
	if got := errors.PartOf(err); got != "interactor" {
		t.Errorf("failing part = %q, want interactor", got)
	}
	assertPresent := filepath.Join(out, "Login", "DataManager", "Local", "LoginDataManager.swift")
	if _, err := os.Stat(assertPresent); err != nil {
		t.Errorf("files before the failing part should remain: %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		env := newCLIEnv(t)
		out := t.TempDir()
		path := filepath.Join(env.home, "bulone.yaml")
		writeFile(t, path, "extension: kt\nlog_level: info\n")

		err := env.run(t, "--config", path, "generate", "Login", "-o", out,
			"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
		testingx.AssertNoError(t, err)
		assertModuleFiles(t, out, "Login", "kt")

		data, err := os.ReadFile(filepath.Join(out, "Login", "View", "LoginView.kt"))
		testingx.AssertNoError(t, err)
		if strings.Contains(string(data), ".swift") {
			t.Errorf("header should not name a .swift file: %q", data)
		}
	})

	t.Run("default location", func(t *testing.T) {
		env := newCLIEnv(t)
		out := t.TempDir()
		writeFile(t, filepath.Join(env.home, "config", "bulone", "config.yaml"), "extension: java\n")

		err := env.run(t, "generate", "Login", "-o", out,
			"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
		testingx.AssertNoError(t, err)
		assertModuleFiles(t, out, "Login", "java")
	})

	t.Run("flag beats config", func(t *testing.T) {
		env := newCLIEnv(t)
		out := t.TempDir()
		t.Setenv("BULONE_EXTENSION", "java")

		err := env.run(t, "generate", "Login", "-o", out, "--ext", "kt",
			"--project", "MyApp", "--author", "Jane", "--copyright", "2024 Jane")
		testingx.AssertNoError(t, err)
		assertModuleFiles(t, out, "Login", "kt")
	})

	t.Run("missing explicit file", func(t *testing.T) {
		env := newCLIEnv(t)
		err := env.run(t, "--config", filepath.Join(env.home, "absent.yaml"), "parts")
		testingx.AssertCode(t, err, errors.CodeInvalidArgument)
	})

	t.Run("invalid value", func(t *testing.T) {
		env := newCLIEnv(t)
		t.Setenv("BULONE_LOG_LEVEL", "loud")
		err := env.run(t, "parts")
		testingx.AssertCode(t, err, errors.CodeInvalidArgument)
	})
}

func TestPartsCommand(t *testing.T) {
	env := newCLIEnv(t)
	testingx.AssertNoError(t, env.run(t, "parts"))

	got := env.stdout.String()
	for _, p := range catalog.All() {
		if !strings.Contains(got, p.Directory()) {
			t.Errorf("parts output missing %s", p.Directory())
		}
	}
	if strings.Index(got, "dataManager") > strings.Index(got, "protocols") {
		t.Error("parts should be listed in generation order")
	}
}

func TestTemplatesCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		env := newCLIEnv(t)
		testingx.AssertNoError(t, env.run(t, "templates", "list"))
		for _, key := range []string{"header", "datamanager", "protocols"} {
			if !strings.Contains(env.stdout.String(), key) {
				t.Errorf("list output missing %s", key)
			}
		}
	})

	t.Run("check built-in", func(t *testing.T) {
		env := newCLIEnv(t)
		testingx.AssertNoError(t, env.run(t, "templates", "check"))
	})

	t.Run("check unknown token", func(t *testing.T) {
		env := newCLIEnv(t)
		tpl := filepath.Join(env.home, "templates")
		writeFile(t, filepath.Join(tpl, "header.mustache"), "// {{ filename }} {{ licence }}")

		err := env.run(t, "templates", "check", "--templates", tpl)
		testingx.AssertCode(t, err, errors.CodeUnresolvedToken)
		if !strings.Contains(env.stdout.String(), "licence") {
			t.Errorf("warning should name the token, got %q", env.stdout.String())
		}
	})

	t.Run("warnings follow template order", func(t *testing.T) {
		env := newCLIEnv(t)
		tpl := filepath.Join(env.home, "templates")
		writeFile(t, filepath.Join(tpl, "wireframe.mustache"), "{{ router }}")
		writeFile(t, filepath.Join(tpl, "datamanager.mustache"), "{{ store }}")
		writeFile(t, filepath.Join(tpl, "header.mustache"), "{{ licence }}")

		for i := 0; i < 5; i++ {
			err := env.run(t, "templates", "check", "--templates", tpl)
			testingx.AssertCode(t, err, errors.CodeUnresolvedToken)

			got := env.stdout.String()
			h := strings.Index(got, `"header"`)
			d := strings.Index(got, `"datamanager"`)
			w := strings.Index(got, `"wireframe"`)
			if h < 0 || !(h < d && d < w) {
				t.Fatalf("warnings out of order: %q", got)
			}
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		env := newCLIEnv(t)
		err := env.run(t, "templates", "list", "--templates", filepath.Join(env.home, "missing"))
		testingx.AssertCode(t, err, errors.CodeInvalidArgument)
	})
}

func TestPrefsCommands(t *testing.T) {
	env := newCLIEnv(t)

	testingx.AssertNoError(t, env.run(t, "prefs", "set", "author", "Jane"))
	testingx.AssertNoError(t, env.run(t, "prefs", "show"))
	if !strings.Contains(env.stdout.String(), "author:    Jane") {
		t.Errorf("show output = %q", env.stdout.String())
	}

	testingx.AssertNoError(t, env.run(t, "prefs", "path"))
	if !strings.Contains(env.stdout.String(), env.prefs) {
		t.Errorf("path output = %q", env.stdout.String())
	}

	err := env.run(t, "prefs", "set", "email", "jane@example.com")
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)
}

func TestVersionCommand(t *testing.T) {
	env := newCLIEnv(t)
	testingx.AssertNoError(t, env.run(t, "version"))
	if !strings.Contains(env.stdout.String(), "bulone") {
		t.Errorf("version output = %q", env.stdout.String())
	}
}
