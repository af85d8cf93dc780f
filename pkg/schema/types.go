package schema

import (
	"errors"

	"github.com/goliatone/go-formstate/pkg/checks"
)

// FieldType is the value type of a declared field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

var (
	// ErrInvalidDefinition wraps every structural problem in a definition.
	ErrInvalidDefinition = errors.New("schema: invalid definition")
	// ErrOperationNotFound is returned by FromOpenAPI for an unknown operation.
	ErrOperationNotFound = errors.New("schema: operation not found")
)

// Form describes a form and its fields in declaration order.
type Form struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	ErrorOn []string `json:"errorOn,omitempty" yaml:"errorOn,omitempty"`
	Fields  []Field  `json:"fields" yaml:"fields"`
	// Source is the file or document the definition was read from.
	Source string `json:"-" yaml:"-"`
}

// Field describes a single field.
type Field struct {
	Name        string        `json:"name" yaml:"name"`
	Type        FieldType     `json:"type,omitempty" yaml:"type,omitempty"`
	Label       string        `json:"label,omitempty" yaml:"label,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Value       any           `json:"value,omitempty" yaml:"value,omitempty"`
	Required    bool          `json:"required,omitempty" yaml:"required,omitempty"`
	ErrorOn     []string      `json:"errorOn,omitempty" yaml:"errorOn,omitempty"`
	Rules       []checks.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// Sanitize strips markup from the value before checks run.
	Sanitize bool `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
}

// DisplayLabel returns the label, falling back to the name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Field looks up a field definition by name.
func (f Form) Field(name string) (Field, bool) {
	for _, candidate := range f.Fields {
		if candidate.Name == name {
			return candidate, true
		}
	}
	return Field{}, false
}
