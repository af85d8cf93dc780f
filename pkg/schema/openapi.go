package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/checks"
)

var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// FromOpenAPI derives a form definition from the request body of the
// operation identified by operationID. Properties become fields in name
// order; object and array properties are skipped. Schema constraints map
// onto rules: minimum, maximum, minLength, maxLength, pattern, enum, the
// email and phone formats, and the required list.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (Form, error) {
	if err := ctx.Err(); err != nil {
		return Form{}, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Form{}, errors.New("schema: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Form{}, fmt.Errorf("schema: load openapi document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return Form{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(operation.RequestBody)
	if body == nil {
		return Form{}, fmt.Errorf("%w: operation %q has no request body schema", ErrInvalidDefinition, operationID)
	}

	def := Form{
		Name:   operationID,
		Title:  operation.Summary,
		Source: "openapi:" + operationID,
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fieldDef, ok := fieldFromSchema(name, ref.Value)
		if !ok {
			continue
		}
		fieldDef.Required = required[name]
		def.Fields = append(def.Fields, fieldDef)
	}

	return Normalize(def)
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, src *openapi3.Schema) (Field, bool) {
	fieldDef := Field{
		Name:        name,
		Label:       src.Title,
		Description: src.Description,
		Value:       src.Default,
	}

	switch schemaType(src.Type) {
	case "", "string":
		fieldDef.Type = FieldTypeString
	case "integer":
		fieldDef.Type = FieldTypeInteger
	case "number":
		fieldDef.Type = FieldTypeNumber
	case "boolean":
		fieldDef.Type = FieldTypeBoolean
	default:
		return Field{}, false
	}

	if src.Min != nil {
		fieldDef.Rules = append(fieldDef.Rules, boundRule(checks.RuleMin, *src.Min, src.ExclusiveMin))
	}
	if src.Max != nil {
		fieldDef.Rules = append(fieldDef.Rules, boundRule(checks.RuleMax, *src.Max, src.ExclusiveMax))
	}
	if src.MinLength != 0 {
		fieldDef.Rules = append(fieldDef.Rules, checks.Rule{
			Kind:   checks.RuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(src.MinLength, 10)},
		})
	}
	if src.MaxLength != nil {
		fieldDef.Rules = append(fieldDef.Rules, checks.Rule{
			Kind:   checks.RuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if src.Pattern != "" {
		fieldDef.Rules = append(fieldDef.Rules, checks.Rule{
			Kind:   checks.RulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	switch strings.ToLower(src.Format) {
	case "email":
		fieldDef.Rules = append(fieldDef.Rules, checks.Rule{Kind: checks.RuleEmail})
	case "phone", "tel":
		fieldDef.Rules = append(fieldDef.Rules, checks.Rule{Kind: checks.RulePhone})
	}
	if len(src.Enum) > 0 {
		values := make([]string, 0, len(src.Enum))
		for _, value := range src.Enum {
			values = append(values, fmt.Sprint(value))
		}
		fieldDef.Rules = append(fieldDef.Rules, checks.Rule{
			Kind:   checks.RuleEnum,
			Params: map[string]string{"values": strings.Join(values, ",")},
		})
	}
	return fieldDef, true
}

func boundRule(kind string, value float64, exclusive bool) checks.Rule {
	params := map[string]string{"value": strconv.FormatFloat(value, 'f', -1, 64)}
	if exclusive {
		params["exclusive"] = "true"
	}
	return checks.Rule{Kind: kind, Params: params}
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}
