package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/schema"
)

var openapiOperation string

var openapiCmd = &cobra.Command{
	Use:   "openapi <document>",
	Short: "Derive a form definition from an OpenAPI request body",
	Long: `Reads an OpenAPI 3 document and prints a form definition document for
the request body of --operation. The output can be used with validate and
fill.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpenAPI,
}

func init() {
	openapiCmd.Flags().StringVar(&openapiOperation, "operation", "", "operation id")
	_ = openapiCmd.MarkFlagRequired("operation")
}

func runOpenAPI(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	def, err := schema.FromOpenAPI(cmd.Context(), data, openapiOperation)
	if err != nil {
		return err
	}

	doc := map[string]map[string]schema.Form{
		"forms": {def.Name: def},
	}
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(doc)
}
