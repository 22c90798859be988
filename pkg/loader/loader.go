package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rulekit/pkg/schema"
)

// Format is a schema document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Extensions lists the file extensions recognised by FormatOf.
var Extensions = []string{".json", ".yaml", ".yml"}

// FormatOf returns the format implied by a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses a schema document. The result keeps the declaration order of
// fields and of the keys inside object-form field definitions.
func Decode(data []byte, format Format) (*schema.Object, error) {
	obj := schema.NewObject()

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, obj)
	case FormatYAML:
		err = yaml.Unmarshal(data, obj)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, errors.Join(ErrParseDocument, err)
	}
	return obj, nil
}

// Read decodes a document from r.
func Read(r io.Reader, format Format) (*schema.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return Decode(data, format)
}

// LoadFile reads and decodes a schema file, picking the format from its extension.
func LoadFile(path string) (*schema.Object, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	obj, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// DecodeValues parses a data document (the values to validate) into a plain map.
// JSON numbers are kept as json.Number so integers survive unchanged.
func DecodeValues(data []byte, format Format) (map[string]any, error) {
	values := map[string]any{}

	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&values)
	case FormatYAML:
		err = yaml.Unmarshal(data, &values)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, errors.Join(ErrParseDocument, err)
	}
	return values, nil
}

// LoadValuesFile reads a JSON or YAML data file.
func LoadValuesFile(path string) (map[string]any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return DecodeValues(data, format)
}
