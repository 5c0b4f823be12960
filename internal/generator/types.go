package generator

import (
	"go.eggybyte.com/bulone/configx"
	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/internal/catalog"
)

// Spec describes one module to generate.
//
// The Generator does not validate a Spec; callers run Validate first.
//
// Usage:
//
//	spec := generator.Spec{
//	    ModuleName:  "Login",
//	    OutputPath:  "/tmp/out",
//	    ProjectName: "MyApp",
//	    Author:      "Jane",
//	    Copyright:   "2024 Jane",
//	}
type Spec struct {
	ModuleName  string `yaml:"module" json:"module" validate:"required"`
	OutputPath  string `yaml:"output" json:"output" validate:"required,dir"`
	ProjectName string `yaml:"project" json:"project" validate:"required"`
	Author      string `yaml:"author" json:"author" validate:"required"`
	Copyright   string `yaml:"copyright" json:"copyright" validate:"required"`
}

// Validate checks every Spec field. Failures come back as CodeInvalidArgument
// wrapping a *configx.ValidationError that names the failed fields.
func Validate(spec Spec) error {
	if err := configx.ValidateStruct(nil, &spec); err != nil {
		return errors.Build(errors.CodeInvalidArgument).
			WithOp("generator.Validate").
			WithErr(err).
			Err()
	}
	return nil
}

// File is one rendered part.
type File struct {
	Part    catalog.Part `json:"-"`
	Path    string       `json:"path"`     // slash-separated, relative to the module directory
	AbsPath string       `json:"abs_path"` // full path on the output filesystem
	Content string       `json:"-"`
}

// Result reports a completed run.
type Result struct {
	Module string `json:"module"`
	Root   string `json:"root"`
	Files  []File `json:"files"`
}

// Paths returns the full path of every written file in generation order.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		paths = append(paths, f.AbsPath)
	}
	return paths
}
