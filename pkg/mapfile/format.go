package mapfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a map document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name such as "json" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%s: no extension: %w", path, ErrUnknownFormat)
	}
	return ParseFormat(ext)
}

// Parse decodes a document. The result is not validated.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	return &doc, nil
}

// Encode serializes a document.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// ReadFile reads and decodes the document at path.
func ReadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile encodes doc in the format implied by path and writes it.
func WriteFile(path string, doc *Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return os.WriteFile(path, data, 0o644)
}
