package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format: формат файла со схемой
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf определяет формат по расширению (по умолчанию yaml)
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

func Decode(data []byte, f Format) (Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s schema: %w", f, err)
	}
	return doc, nil
}

func Encode(doc Document, f Format) ([]byte, error) {
	if doc.Entities == nil {
		doc.Entities = []WireEntity{}
	}
	switch f {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	default:
		return yaml.Marshal(doc)
	}
}

// ReadFile читает документ схемы (.yaml/.yml/.json)
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	doc, err := Decode(data, FormatOf(path))
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func WriteFile(path string, doc Document) error {
	data, err := Encode(doc, FormatOf(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
