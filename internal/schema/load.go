// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"io"
	"io/fs"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a schema file.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (*Schema, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, filePath)
}

// LoadBytes parses schema bytes using the extension of filePath to pick the
// format. YAML documents are converted to JSON before decoding so that both
// formats share the interchange rules.
func LoadBytes(data []byte, filePath string) (*Schema, error) {
	switch {
	case strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml"):
		jsonData, err := yamlToJSON(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", filePath)
		}
		return Unmarshal(jsonData)
	case strings.HasSuffix(filePath, ".json"):
		return Unmarshal(data)
	default:
		return nil, errors.Newf("unsupported schema format: %s", filePath)
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(doc))
}

// normalizeYAML rewrites map[any]any keys into strings so the document can be
// re-encoded as JSON.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAML(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}
