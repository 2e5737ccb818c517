package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"legal-docs-workers/internal/documents"
)

// loadRecord reads a record fixture. YAML fixtures may carry the blocks
// inline under fields; JSON fixtures may also use a blocks object.
func loadRecord(path string) (*documents.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", path, err)
	}

	var record documents.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("parse record %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("parse record %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("record %s: unsupported extension, want .yaml, .yml or .json", path)
	}

	if record.Fields == nil {
		record.Fields = map[string]interface{}{}
	}
	return &record, nil
}
