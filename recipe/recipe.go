// Package recipe runs batches of edits described in yaml files, e.g.
//
//	version: 1.0.0
//	input: in.wav
//	output: out.wav
//	operations: [reverse, smooth, increase_volume]
//
// A recipe starts either from an input .wav file or from a note script.
package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/vsariola/wavedit"
	"github.com/vsariola/wavedit/session"
)

// SupportedVersions is the constraint recipe versions have to satisfy.
const SupportedVersions = "^1"

type Recipe struct {
	Version    string              `yaml:"version"`
	Input      string              `yaml:"input,omitempty"`
	Script     string              `yaml:"script,omitempty"`
	Output     string              `yaml:"output"`
	Operations []wavedit.Operation `yaml:"operations,flow"`
}

// Files is everything a recipe needs to read and write.
type Files interface {
	wavedit.Loader
	wavedit.Writer
	wavedit.ScriptReader
}

// Result summarizes a finished recipe.
type Result struct {
	Samples   int
	FrameRate int
	Skipped   int
}

var supported = func() *semver.Constraints {
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		panic(err)
	}
	return c
}()

// Parse decodes and validates a recipe.
func Parse(b []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("could not parse recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ReadFile parses a recipe file. Relative paths in the recipe are resolved
// against the directory of the recipe file.
func ReadFile(path string) (*Recipe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	dir := filepath.Dir(path)
	for _, p := range []*string{&r.Input, &r.Script, &r.Output} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return r, nil
}

func (r *Recipe) Validate() error {
	if r.Version == "" {
		return errors.New("recipe has no version")
	}
	v, err := semver.NewVersion(r.Version)
	if err != nil {
		return fmt.Errorf("invalid recipe version %q: %w", r.Version, err)
	}
	if !supported.Check(v) {
		return fmt.Errorf("recipe version %v is not supported, expected %v", v, SupportedVersions)
	}
	if (r.Input == "") == (r.Script == "") {
		return errors.New("recipe needs exactly one of input and script")
	}
	if r.Output == "" {
		return errors.New("recipe has no output")
	}
	return nil
}

// Run loads or composes the source audio into the session, applies the
// operations in order and saves the result. It stops at the first failing
// step.
func (r *Recipe) Run(s *session.Session, files Files) (Result, error) {
	var res Result
	if r.Input != "" {
		if err := s.Load(files, r.Input); err != nil {
			return res, err
		}
	} else {
		skipped, err := s.Compose(files, r.Script)
		if err != nil {
			return res, err
		}
		res.Skipped = skipped
	}
	for i, op := range r.Operations {
		if err := s.Apply(op); err != nil {
			return res, fmt.Errorf("operation %d: %w", i+1, err)
		}
	}
	if err := s.Save(files, r.Output); err != nil {
		return res, err
	}
	res.Samples = s.Len()
	res.FrameRate = s.FrameRate()
	return res, nil
}
