package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/tracemesh/internal/structure"
)

// Parser converts a raw structure document into a Structure Model.
type Parser interface {
	Parse(r io.Reader, filename string) (*structure.Model, error)
}

// Options tune how documents are read.
type Options struct {
	// StrictProperties rejects property names without a dedicated variant
	// instead of keeping them as Generic properties.
	StrictProperties bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	conv := converter{strict: opts.StrictProperties}
	switch ext {
	case ".json":
		return &JSONParser{conv: conv}, nil
	case ".yaml", ".yml":
		return &YAMLParser{conv: conv}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// JSONParser handles JSON structure documents.
type JSONParser struct {
	conv converter
}

func (p *JSONParser) Parse(r io.Reader, filename string) (*structure.Model, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &structure.Model{}, nil
		}
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return p.conv.model(&doc)
}

// YAMLParser handles YAML structure documents.
type YAMLParser struct {
	conv converter
}

func (p *YAMLParser) Parse(r io.Reader, filename string) (*structure.Model, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &structure.Model{}, nil
		}
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return p.conv.model(&doc)
}
