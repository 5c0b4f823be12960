package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/internal/render"
)

func TestEmbedded_CompleteSet(t *testing.T) {
	store := Embedded()

	if err := Check(store); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	for _, key := range Required() {
		t.Run(key, func(t *testing.T) {
			text, err := store.Load(key)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", key, err)
			}
			for _, name := range render.Placeholders(text) {
				if !render.IsKnown(name) {
					t.Errorf("template %q uses unknown token %q", key, name)
				}
			}
		})
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != len(Required()) {
		t.Errorf("Keys() = %v, want %d keys", keys, len(Required()))
	}
}

func TestEmbedded_HeaderHasNoExtension(t *testing.T) {
	header, err := Embedded().Load("header")
	if err != nil {
		t.Fatalf("Load(header) error = %v", err)
	}
	// The output extension is configurable, so the header names the file by stem only.
	if !strings.Contains(header, "//  {{ filename }}\n") || strings.Contains(header, ".swift") {
		t.Errorf("header should name {{ filename }} without an extension:\n%s", header)
	}
}

func TestEmbedded_Lookup(t *testing.T) {
	store := Embedded()

	tests := []struct {
		key  string
		code errors.Code
	}{
		{"header", ""},
		{"HEADER", ""},
		{"DataManager", ""},
		{"presenter.mustache", ""},
		{"item", errors.CodeTemplateNotFound},
		{"", errors.CodeTemplateNotFound},
		{"../templates.go", errors.CodeTemplateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := store.Load(tt.key)
			if got := errors.CodeOf(err); got != tt.code {
				t.Errorf("Load(%q) code = %q, want %q (err %v)", tt.key, got, tt.code, err)
			}
		})
	}
}

func TestMapStore(t *testing.T) {
	store := MapStore{"Header": "h", "view": "v"}

	if text, err := store.Load("header"); err != nil || text != "h" {
		t.Errorf("Load(header) = %q, %v", text, err)
	}
	if text, err := store.Load("VIEW"); err != nil || text != "v" {
		t.Errorf("Load(VIEW) = %q, %v", text, err)
	}

	_, err := store.Load("presenter")
	if !errors.IsCode(err, errors.CodeTemplateNotFound) {
		t.Fatalf("Load(presenter) error = %v", err)
	}
	var e *errors.E
	if !errors.As(err, &e) || e.Template != "presenter" {
		t.Errorf("error should name the template: %v", err)
	}

	keys, _ := store.Keys()
	if strings.Join(keys, ",") != "header,view" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestDirStore_MemFS(t *testing.T) {
	fs := memfs.New()
	files := map[string]string{
		"tpl/header.mustache":               "H",
		"tpl/parts/View.mustache":           "V",
		"tpl/parts/deep/wireframe.mustache": "W",
		"tpl/README.md":                     "ignored",
	}
	for name, content := range files {
		if err := util.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store, err := NewDirStore(fs, "tpl")
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}

	tests := map[string]string{"header": "H", "view": "V", "Wireframe": "W"}
	for key, want := range tests {
		got, err := store.Load(key)
		if err != nil || got != want {
			t.Errorf("Load(%q) = %q, %v; want %q", key, got, err, want)
		}
	}

	if _, err := store.Load("readme"); !errors.IsCode(err, errors.CodeTemplateNotFound) {
		t.Errorf("non-matching file should not resolve: %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if strings.Join(keys, ",") != "header,view,wireframe" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestDirStore_Pattern(t *testing.T) {
	fs := memfs.New()
	_ = util.WriteFile(fs, "tpl/top.mustache", []byte("top"), 0o644)
	_ = util.WriteFile(fs, "tpl/sub/view.mustache", []byte("nested"), 0o644)

	store, err := NewDirStore(fs, "tpl", WithPattern("*.mustache"))
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}
	if _, err := store.Load("view"); err == nil {
		t.Error("pattern without ** should not match nested files")
	}
	if text, err := store.Load("top"); err != nil || text != "top" {
		t.Errorf("Load(top) = %q, %v", text, err)
	}

	if _, err := NewDirStore(fs, "tpl", WithPattern("[")); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Errorf("invalid pattern error = %v", err)
	}
	if _, err := NewDirStore(fs, "missing"); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Errorf("missing root error = %v", err)
	}
}

func TestDirStore_OS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "header.mustache"), []byte("disk"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := NewDirStore(osfs.New("/"), dir)
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}
	if store.Root() != dir {
		t.Errorf("Root() = %q", store.Root())
	}
	if text, err := store.Load("header"); err != nil || text != "disk" {
		t.Errorf("Load(header) = %q, %v", text, err)
	}
}

func TestLayered(t *testing.T) {
	user := MapStore{"header": "custom header"}
	store := NewLayered(user, nil, Embedded())

	text, err := store.Load("header")
	if err != nil || text != "custom header" {
		t.Errorf("Load(header) = %q, %v; want the first layer", text, err)
	}
	if _, err := store.Load("protocols"); err != nil {
		t.Errorf("Load(protocols) should fall through to embedded: %v", err)
	}
	if _, err := store.Load("bogus"); !errors.IsCode(err, errors.CodeTemplateNotFound) {
		t.Errorf("Load(bogus) error = %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != len(Required()) {
		t.Errorf("Keys() = %v, want union without duplicates", keys)
	}
}

func TestCheck_Missing(t *testing.T) {
	store := MapStore{"header": "", "dataManager": ""}

	err := Check(store)
	if !errors.IsCode(err, errors.CodeTemplateNotFound) {
		t.Fatalf("Check() error = %v", err)
	}
	var e *errors.E
	if !errors.As(err, &e) || e.Template != "interactor" {
		t.Errorf("Check() should name the first missing key: %v", err)
	}
	if !strings.Contains(err.Error(), "interactor, presenter, view, wireframe, protocols") {
		t.Errorf("Check() should list every missing key: %v", err)
	}

	if err := Check(store, "header"); err != nil {
		t.Errorf("Check(header) error = %v", err)
	}
}
