package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const tableSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["columns", "rows"],
  "properties": {
    "columns": {"type": "array", "items": {"type": "string"}},
    "rows": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["cells"],
        "properties": {
          "cells": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["text"],
              "properties": {
                "text": {"type": "string"},
                "highlight": {"type": "string"}
              },
              "additionalProperties": false
            }
          }
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("table.json", strings.NewReader(tableSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to load table schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("table.json")
	})
	return schema, schemaErr
}

// Load reads a table from path.
func Load(path string) (*Table, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	t, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// Decode reads a table in the given format. JSON input is validated against
// the table schema before decoding.
func Decode(r io.Reader, format Format) (*Table, error) {
	var t Table
	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if err := validateJSON(raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to decode table: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&t); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode table: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown document format: %s", format)
	}
	return &t, nil
}

func validateJSON(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("document does not match table schema: %w", err)
	}
	return nil
}

// Encode writes a table in the given format.
func Encode(w io.Writer, format Format, t *Table) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(t)
	default:
		return fmt.Errorf("unknown document format: %s", format)
	}
}

// Save writes t to path atomically: the table is encoded to a temporary file
// in the same directory and renamed into place. The rename is retried
// because editors on some platforms briefly lock the target.
func Save(ctx context.Context, path string, t *Table) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, format, t); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	err = retry.Do(
		func() error { return os.Rename(tmpName, path) },
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
