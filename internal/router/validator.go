// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/MKhiriev/go-form-coach/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://formcoach.local/schemas/"

// Validator checks envelope data against per-type JSON schemas. Types
// without a schema are accepted as-is.
type Validator struct {
	schemas map[models.MessageType]*jsonschema.Schema
}

// NewValidator compiles every embedded schema. A schema file named
// <type>.json applies to envelopes of that type.
func NewValidator() (*Validator, error) {
	return newValidatorFS(schemaFS, "schemas")
}

func newValidatorFS(fsys fs.FS, dir string) (*Validator, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	urls := make(map[models.MessageType]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".json" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		url := schemaBaseURL + name
		if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add schema resource %s: %w", name, err)
		}
		urls[models.MessageType(strings.TrimSuffix(name, ".json"))] = url
	}

	v := &Validator{schemas: make(map[models.MessageType]*jsonschema.Schema, len(urls))}
	for t, url := range urls {
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", t, err)
		}
		v.schemas[t] = schema
	}

	return v, nil
}

// HasSchema reports whether t has a registered schema.
func (v *Validator) HasSchema(t models.MessageType) bool {
	_, ok := v.schemas[t]
	return ok
}

// Validate checks env.Data. Missing or null data is validated as an empty
// object so that types with required members reject it.
func (v *Validator) Validate(env models.Envelope) error {
	schema, ok := v.schemas[env.Type]
	if !ok {
		return nil
	}

	raw := []byte(env.Data)
	if len(raw) == 0 || string(raw) == "null" {
		raw = []byte("{}")
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaViolation, env.Type, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaViolation, env.Type, err)
	}

	return nil
}
