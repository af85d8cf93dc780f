package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/coerce"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	validateForm   string
	validateValues string
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check form definitions and, optionally, a set of values",
	Long: `Loads form definitions from a file or directory and builds every form.
With --values, the values are applied to the selected form and any field
errors are reported as JSON; the command fails when a field is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateForm, "form", "", "form to check values against")
	validateCmd.Flags().StringVar(&validateValues, "values", "", "JSON or YAML file with field values")
}

type validationReport struct {
	Form   string              `json:"form"`
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer syncLogger(cfg.Logger)

	set, err := loadDefinitions(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if validateValues == "" {
		for _, name := range set.Names() {
			def, _ := set.Form(name)
			if _, err := schema.Build(def, cfg); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d fields\n", name, len(def.Fields))
		}
		return nil
	}

	def, err := pickForm(set, validateForm)
	if err != nil {
		return err
	}
	values, err := readValues(validateValues)
	if err != nil {
		return err
	}
	built, err := schema.Build(def, cfg)
	if err != nil {
		return err
	}
	if err := applyValues(built, values); err != nil {
		return err
	}

	report := reportFor(built.State())
	if err := writeJSON(out, report); err != nil {
		return err
	}
	if !report.Valid {
		return fmt.Errorf("form %q is invalid", def.Name)
	}
	return nil
}

// applyValues delivers each value to its field as a change followed by a
// blur. Values for unknown fields are ignored.
func applyValues(f *form.Form, values map[string]any) error {
	for _, name := range f.Names() {
		value, ok := values[name]
		if !ok {
			continue
		}
		source, _ := f.Field(name)
		control, ok := source.(field.Control)
		if !ok {
			continue
		}
		n := coerce.Value(value)
		if err := control.OnChange(n); err != nil {
			return err
		}
		if err := control.OnBlur(n); err != nil {
			return err
		}
	}
	return nil
}

func reportFor(state form.State) validationReport {
	report := validationReport{Form: state.Name, Valid: state.IsAllValid}
	for _, status := range state.Fields {
		if !status.IsError {
			continue
		}
		if report.Errors == nil {
			report.Errors = make(map[string][]string)
		}
		report.Errors[status.Name] = validation.Messages(status.Errors)
	}
	return report
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
