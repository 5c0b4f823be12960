package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidArgument, "module name is required")
	if err == nil {
		t.Fatal("New should return non-nil error")
	}

	var customErr *E
	if !errors.As(err, &customErr) {
		t.Fatal("Error should be of type *E")
	}

	if customErr.Code != CodeInvalidArgument {
		t.Errorf("Expected code %s, got %s", CodeInvalidArgument, customErr.Code)
	}
	if got, want := err.Error(), "INVALID_ARGUMENT: module name is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("permission denied")
	wrappedErr := Wrap(CodeFileWriteFailed, "projectfs.WriteFile", originalErr)

	var customErr *E
	if !errors.As(wrappedErr, &customErr) {
		t.Fatal("Wrapped error should be of type *E")
	}
	if customErr.Op != "projectfs.WriteFile" {
		t.Errorf("Expected operation %q, got %q", "projectfs.WriteFile", customErr.Op)
	}
	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Wrapped error should unwrap to the original error")
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrapf(CodeDirectoryCreationFailed, "mkdir", cause, "creating %s", "View")

	if !strings.Contains(err.Error(), "creating View: disk full") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "code only",
			err:  Build(CodeInternal).Err(),
			want: "INTERNAL",
		},
		{
			name: "template not found for part",
			err: Build(CodeTemplateNotFound).
				WithPart("presenter").
				WithTemplate("presenter").
				WithMsg("no such template").
				Err(),
			want: `TEMPLATE_NOT_FOUND: part presenter: template "presenter": no such template`,
		},
		{
			name: "path with cause",
			err: Build(CodeFileWriteFailed).
				WithPath("/tmp/out/Login/View/LoginView.swift").
				WithErr(errors.New("is a directory")).
				Err(),
			want: "FILE_WRITE_FAILED: /tmp/out/Login/View/LoginView.swift: is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if code := CodeOf(New(CodeTemplateNotFound, "x")); code != CodeTemplateNotFound {
		t.Errorf("CodeOf() = %s, want %s", code, CodeTemplateNotFound)
	}
	if code := CodeOf(errors.New("plain")); code != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", code)
	}
	if code := CodeOf(nil); code != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", code)
	}
}

func TestAttribute(t *testing.T) {
	base := Build(CodeTemplateNotFound).WithTemplate("view").Err()
	attributed := Attribute(base, "view")

	if PartOf(attributed) != "view" {
		t.Errorf("PartOf() = %q, want %q", PartOf(attributed), "view")
	}
	if PartOf(base) != "" {
		t.Error("Attribute must not mutate the original error")
	}
	if !IsCode(attributed, CodeTemplateNotFound) {
		t.Error("Attribute must keep the original code")
	}

	plain := Attribute(errors.New("boom"), "wireframe")
	if !IsCode(plain, CodeInternal) || PartOf(plain) != "wireframe" {
		t.Errorf("unexpected attribution of plain error: %v", plain)
	}

	if Attribute(nil, "view") != nil {
		t.Error("Attribute(nil) should be nil")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("read-only file system")
	err := Build(CodeDirectoryCreationFailed).
		WithOp("generator.Generate").
		WithPart("dataManager").
		WithPath("/out/Login/DataManager/Local").
		WithMsgf("creating %s", "directory").
		WithErr(cause).
		Err()

	var e *E
	if !As(err, &e) {
		t.Fatal("expected *E")
	}
	if e.Op != "generator.Generate" || e.Part != "dataManager" || e.Path != "/out/Login/DataManager/Local" {
		t.Errorf("builder fields not set: %+v", e)
	}
	if !Is(err, cause) {
		t.Error("builder error should unwrap to cause")
	}
}
