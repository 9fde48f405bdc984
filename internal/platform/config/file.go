package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	perr "taupe/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes the YAML document at path into a T.
// An empty path yields the zero T. Unknown keys are rejected so typos surface.
func LoadYAML[T any](path string) (T, error) {
	var out T
	if path == "" {
		return out, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeFile, "read settings %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return out, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse settings %s", path)
	}
	return out, nil
}
