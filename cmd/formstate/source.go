package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// loadDefinitions reads a single document or every document under a
// directory.
func loadDefinitions(path string) (*schema.Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return schema.LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Parse(data, filepath.Base(path))
}

func pickForm(set *schema.Set, name string) (schema.Form, error) {
	if name == "" {
		names := set.Names()
		if len(names) != 1 {
			return schema.Form{}, fmt.Errorf("--form is required when the document defines %d forms", len(names))
		}
		name = names[0]
	}
	def, ok := set.Form(name)
	if !ok {
		return schema.Form{}, fmt.Errorf("form %q not found", name)
	}
	return def, nil
}

// readValues decodes a JSON or YAML object of field values.
func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err == nil {
		return values, nil
	}
	values = make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: invalid JSON or YAML", path)
	}
	// YAML integers decode as int; fields hold numbers as float64.
	for key, value := range values {
		if number, ok := value.(int); ok {
			values[key] = float64(number)
		}
	}
	return values, nil
}
