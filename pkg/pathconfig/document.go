package pathconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a path configuration document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the persisted form: top-level settings and an ordered rule list.
type Document struct {
	Settings map[string]any `json:"settings" yaml:"settings"`
	Rules    []Rule         `json:"rules" yaml:"rules"`
}

// Decode parses a document. A document without a rules list is invalid.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode yaml path configuration: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode json path configuration: %w", err)
		}
	}
	if doc.Rules == nil {
		return nil, fmt.Errorf("%w: missing rules", domain.ErrInvalidDocument)
	}
	if doc.Settings == nil {
		doc.Settings = map[string]any{}
	}
	return &doc, nil
}

// Encode writes the document in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// SniffFormat guesses the format of raw bytes: JSON documents start with '{'.
func SniffFormat(data []byte) Format {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}
