// Package config loads and validates unicheck configuration files.
package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/uniformal/unicheck/api"
	"github.com/uniformal/unicheck/api/v1beta1"
	"github.com/uniformal/unicheck/pkg/schema"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// Loader is a generic configuration loader that handles schema validation,
// YAML/JSON parsing, and error formatting for any config type T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
// The newFunc parameter is the constructor for type T (e.g., rulesets.New).
func NewLoaderFromBytes[T v1beta1.Object](
	data []byte,
	newFunc func() T,
	validator Validator,
) *Loader[T] {
	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: validator,
	}
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile[T v1beta1.Object](
	path string,
	newFunc func() T,
	validator Validator,
) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, validator), nil
}

// Validate validates the configuration data against the schema.
func (l *Loader[T]) Validate() error {
	var anyConfig any

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(&anyConfig)
	if err != nil {
		return l.wrapError(err)
	}

	if l.validator != nil {
		err = l.validator.Validate(anyConfig)
		if err != nil {
			return l.wrapError(err)
		}
	}

	return nil
}

// Load parses and returns the configuration.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	cfg := l.newFunc()

	dec := yaml.NewDecoder(bytes.NewReader(l.data), yaml.Strict())

	err := dec.Decode(cfg)
	if err != nil {
		var zero T

		return zero, l.wrapError(err)
	}

	cfg.EnsureDefaults()

	return cfg, nil
}

// wrapError attaches an annotated source snippet to schema and parse errors
// so the failing node is visible in terminal output.
func (l *Loader[T]) wrapError(err error) error {
	var validationErr *schema.ValidationError
	if errors.As(err, &validationErr) && validationErr.Path != nil {
		annotated, annotateErr := validationErr.Path.AnnotateSource(l.data, true)
		if annotateErr == nil {
			return fmt.Errorf("%w\n%s", err, annotated)
		}

		return err
	}

	if formatted := yaml.FormatError(err, true, true); formatted != err.Error() {
		return fmt.Errorf("%w\n%s", err, formatted)
	}

	return err
}
