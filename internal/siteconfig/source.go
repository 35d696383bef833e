package siteconfig

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// Format identifies the syntax of a configuration source.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	// FormatModule is a CommonJS or ES module whose export is an object literal,
	// the form the engine itself reads from .vuepress/config.js.
	FormatModule Format = "module"
)

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".jsonc":
		return FormatJSONC, nil
	case ".js", ".cjs", ".mjs":
		return FormatModule, nil
	}
	return "", errors.ConfigError("unsupported configuration file extension").
		WithContext("path", path).
		WithContext("supported", []string{".yaml", ".yml", ".json", ".jsonc", ".js", ".cjs", ".mjs"}).
		Build()
}

// ReadDocument reads a configuration file into its generic tree.
func ReadDocument(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot read configuration file").
			WithContext("path", path).
			Build()
	}
	doc, err := ParseDocument(data, format)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// ParseDocument parses source bytes into the generic tree. It checks syntax
// only; the schema is applied by LoadDocument.
func ParseDocument(data []byte, format Format) (Document, error) {
	var root any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &root)
	case FormatJSON, FormatJSONC:
		err = json.Unmarshal(jsonc.ToJSON(data), &root)
	case FormatModule:
		var literal []byte
		if literal, err = moduleLiteral(data); err == nil {
			err = yaml.Unmarshal(literal, &root)
		}
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unknown configuration format %q", format)).Build()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "cannot parse configuration").
			Fatal().
			WithContext("format", string(format)).
			Build()
	}

	switch r := root.(type) {
	case nil:
		return Document{}, nil
	case map[string]any:
		return Document(r), nil
	case map[any]any:
		doc := make(Document, len(r))
		for k, v := range r {
			ks, ok := k.(string)
			if !ok {
				return nil, errors.ConfigError(fmt.Sprintf("top-level key %v is not a string", k)).Build()
			}
			doc[ks] = v
		}
		return doc, nil
	}
	return nil, errors.ConfigError("configuration must be a mapping at the top level").
		WithContext("format", string(format)).
		Build()
}
