/*
File    : ember/internal/config/config.go
Package : config
*/

// Package config loads Ember's optional run configuration: an `.ember.json`
// file next to the current working directory, schema-validated before use
// (SPEC_FULL §3's ambient configuration concern — spec.md itself has
// nothing to say about configuration beyond the REPL-mode flag it already
// threads through the evaluator). Absence of the file is not an error;
// defaults apply. Config covers REPL cosmetics and an interpreter safety
// knob, never language semantics.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FileName is the config file Ember looks for next to the CWD.
const FileName = ".ember.json"

// schemaDoc constrains .ember.json's shape: all fields optional, extra
// fields rejected so a typo'd key fails loudly instead of being silently
// ignored.
const schemaDoc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "prompt": {"type": "string", "minLength": 1},
    "color": {"type": "boolean"},
    "maxCallDepth": {"type": "integer", "minimum": 1}
  }
}`

// Config is Ember's run configuration, with defaults matching the
// teacher's hardcoded main/main.go constants (PROMPT, ...) now made
// overridable rather than compiled in.
type Config struct {
	Prompt       string `json:"prompt"`
	Color        bool   `json:"color"`
	MaxCallDepth int    `json:"maxCallDepth"`
}

// Default returns Ember's built-in configuration, used when no
// `.ember.json` is present.
func Default() Config {
	return Config{
		Prompt:       "> ",
		Color:        true,
		MaxCallDepth: 1000,
	}
}

// Load reads `.ember.json` from dir (the CWD, typically), validates it
// against schemaDoc, and overlays any present field onto Default(). A
// missing file is not an error — Default() is returned unchanged. A
// present-but-malformed file (bad JSON, schema violation) is an error the
// caller should surface and fail startup on, since a config file the user
// placed there should never be silently ignored.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return cfg, fmt.Errorf("config: %s is not valid JSON: %w", path, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return cfg, fmt.Errorf("config: internal schema error: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return cfg, fmt.Errorf("config: %s failed validation: %w", path, err)
	}

	var overlay struct {
		Prompt       *string `json:"prompt"`
		Color        *bool   `json:"color"`
		MaxCallDepth *int    `json:"maxCallDepth"`
	}
	if err := json.Unmarshal(raw, &overlay); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if overlay.Prompt != nil {
		cfg.Prompt = *overlay.Prompt
	}
	if overlay.Color != nil {
		cfg.Color = *overlay.Color
	}
	if overlay.MaxCallDepth != nil {
		cfg.MaxCallDepth = *overlay.MaxCallDepth
	}
	return cfg, nil
}

// compileSchema compiles the embedded schema document once per call; the
// interpreter only ever calls Load once per process, so no caching is
// warranted (go-cmp-style over-engineering would be premature here).
func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	const url = "ember://config.json"
	if err := compiler.AddResource(url, strings.NewReader(schemaDoc)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}
