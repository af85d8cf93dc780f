package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signup = `
forms:
  signup:
    fields:
      - name: email
        required: true
        rules:
          - kind: email
      - name: age
        type: integer
        rules:
          - kind: min
            params:
              value: "18"
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	validateForm, validateValues, configPath, logLevel = "", "", "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateDefinitions(t *testing.T) {
	path := writeFile(t, "signup.yaml", signup)

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "signup: 2 fields\n", out)
}

func TestValidateValues(t *testing.T) {
	path := writeFile(t, "signup.yaml", signup)
	values := writeFile(t, "values.yaml", "email: nope\nage: 16\n")

	out, err := run(t, "validate", path, "--values", values)
	require.Error(t, err)
	assert.Contains(t, out, `"must be a valid email address"`)
	assert.Contains(t, out, `"must be at least 18"`)

	good := writeFile(t, "good.json", `{"email": "ann@example.com", "age": 30}`)
	out, err = run(t, "validate", path, "--values", good)
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)
}

func TestValidateUnknownForm(t *testing.T) {
	path := writeFile(t, "signup.yaml", signup)
	values := writeFile(t, "values.json", `{}`)

	_, err := run(t, "validate", path, "--form", "login", "--values", values)
	assert.ErrorContains(t, err, `form "login" not found`)
}
