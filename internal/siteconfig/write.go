package siteconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// Write serializes doc to w in the given format. Every format's output is
// accepted back by ParseDocument.
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON, FormatJSONC:
		return WriteJSON(w, doc)
	case FormatYAML:
		return WriteYAML(w, doc)
	case FormatModule:
		return WriteModule(w, doc)
	}
	return errors.ConfigError(fmt.Sprintf("unknown output format %q", format)).Build()
}

// WriteJSON writes doc as indented JSON with sorted keys.
func WriteJSON(w io.Writer, doc Document) error {
	data, err := marshalJSON(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write configuration").Build()
	}
	return nil
}

// WriteYAML writes doc as block-style YAML.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(doc)); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "cannot encode configuration as YAML").Build()
	}
	if err := enc.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write configuration").Build()
	}
	return nil
}

// WriteModule writes doc as the CommonJS module the engine reads from
// .vuepress/config.js.
func WriteModule(w io.Writer, doc Document) error {
	data, err := marshalJSON(doc)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString("module.exports = ")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString(";\n")
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write configuration").Build()
	}
	return nil
}

func marshalJSON(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any(doc)); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "cannot encode configuration as JSON").Build()
	}
	return buf.Bytes(), nil
}
