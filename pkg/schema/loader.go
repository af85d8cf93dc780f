package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/checks"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Set is a collection of form definitions keyed by form name.
type Set struct {
	forms map[string]Form
}

// LoadFS walks fsys and parses every JSON or YAML file it finds. A nil fsys
// yields an empty set. Form names must be unique across files.
func LoadFS(fsys fs.FS) (*Set, error) {
	set := &Set{forms: make(map[string]Form)}
	if fsys == nil {
		return set, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		parsed, err := Parse(data, path)
		if err != nil {
			return err
		}
		return set.merge(parsed, path)
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Parse decodes a single document. JSON is tried first, then YAML.
func Parse(data []byte, source string) (*Set, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
		}
	}

	set := &Set{forms: make(map[string]Form, len(doc.Forms))}
	for key, raw := range doc.Forms {
		name := strings.TrimSpace(key)
		if name == "" {
			return nil, fmt.Errorf("%w: file %s defines a form with an empty name", ErrInvalidDefinition, source)
		}
		raw.Name = name
		raw.Source = source
		normalised, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		set.forms[name] = normalised
	}
	return set, nil
}

// Form returns the named definition.
func (s *Set) Form(name string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	def, ok := s.forms[name]
	return def, ok
}

// Names returns the form names, sorted.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the set holds any forms.
func (s *Set) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func (s *Set) merge(other *Set, source string) error {
	for name, def := range other.forms {
		if existing, exists := s.forms[name]; exists {
			return fmt.Errorf("%w: duplicate form %q (files %s and %s)", ErrInvalidDefinition, name, existing.Source, source)
		}
		s.forms[name] = def
	}
	return nil
}

type documentFile struct {
	Forms map[string]Form `json:"forms" yaml:"forms"`
}

// Normalize trims names, defaults field types to string and reports
// structural problems: empty or duplicate field names, unknown types and
// unknown errorOn modes.
func Normalize(def Form) (Form, error) {
	out := def
	out.Name = strings.TrimSpace(def.Name)
	if out.Name == "" {
		return Form{}, fmt.Errorf("%w: form name is required", ErrInvalidDefinition)
	}
	if len(def.ErrorOn) > 0 {
		if _, err := validation.ParseErrorOn(def.ErrorOn...); err != nil {
			return Form{}, fmt.Errorf("%w: form %q: %w", ErrInvalidDefinition, out.Name, err)
		}
	}
	out.Fields = make([]Field, 0, len(def.Fields))
	seen := make(map[string]struct{}, len(def.Fields))

	for idx, raw := range def.Fields {
		fieldDef := raw
		fieldDef.Name = strings.TrimSpace(raw.Name)
		if fieldDef.Name == "" {
			return Form{}, fmt.Errorf("%w: form %q field %d has no name", ErrInvalidDefinition, out.Name, idx)
		}
		if _, dup := seen[fieldDef.Name]; dup {
			return Form{}, fmt.Errorf("%w: form %q defines field %q twice", ErrInvalidDefinition, out.Name, fieldDef.Name)
		}
		seen[fieldDef.Name] = struct{}{}

		fieldDef.Type = FieldType(strings.ToLower(strings.TrimSpace(string(raw.Type))))
		switch fieldDef.Type {
		case "":
			fieldDef.Type = FieldTypeString
		case FieldTypeString, FieldTypeInteger, FieldTypeNumber, FieldTypeBoolean:
		default:
			return Form{}, fmt.Errorf("%w: form %q field %q has unsupported type %q", ErrInvalidDefinition, out.Name, fieldDef.Name, raw.Type)
		}
		if len(raw.ErrorOn) > 0 {
			if _, err := validation.ParseErrorOn(raw.ErrorOn...); err != nil {
				return Form{}, fmt.Errorf("%w: form %q field %q: %w", ErrInvalidDefinition, out.Name, fieldDef.Name, err)
			}
		}
		fieldDef.Rules = append([]checks.Rule(nil), raw.Rules...)
		out.Fields = append(out.Fields, fieldDef)
	}
	return out, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
