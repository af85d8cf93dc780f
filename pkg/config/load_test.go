package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstate/pkg/hints"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, validation.ErrorOnError, cfg.ErrorOn)
	assert.False(t, cfg.DisableCoerceBack)
	assert.False(t, cfg.DisableTypeMismatchWarning)
	assert.False(t, cfg.DisableKeyboardInference)
	assert.False(t, cfg.InferAutoCapitalize)
	assert.Equal(t, hints.PlatformWeb, cfg.Platform)
	assert.Equal(t, DefaultValueKey, cfg.ValueKey)
	assert.NotNil(t, cfg.Comparator)
	assert.NotNil(t, cfg.Logger)
}

func TestLoad_FromFile(t *testing.T) {
	content := `
errorOn: [error, boolean]
coerceBack: false
inferAutoCapitalize: true
platform: native
valueKey: text
log:
  level: debug
  format: json
`
	path := filepath.Join(t.TempDir(), "formstate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, validation.ErrorOnError|validation.ErrorOnBoolean, cfg.ErrorOn)
	assert.True(t, cfg.DisableCoerceBack)
	assert.True(t, cfg.InferAutoCapitalize)
	assert.Equal(t, hints.PlatformNative, cfg.Platform)
	assert.Equal(t, "text", cfg.ValueKey)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("FORMSTATE_ERRORON", "string,boolean")
	t.Setenv("FORMSTATE_PLATFORM", "native")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, validation.ErrorOnString|validation.ErrorOnBoolean, cfg.ErrorOn)
	assert.Equal(t, hints.PlatformNative, cfg.Platform)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("FORMSTATE_ERRORON", "number")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrUnknownErrorOn))
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("errorOn: [error\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.ErrorOn = 0
	assert.ErrorIs(t, cfg.Validate(), validation.ErrEmptyErrorOn)

	cfg = Default()
	cfg.Comparator = nil
	assert.ErrorIs(t, cfg.Validate(), ErrComparatorRequired)

	cfg = Default()
	cfg.Platform = "desktop"
	assert.Error(t, cfg.Validate())
}

func TestNormalizedFillsGaps(t *testing.T) {
	cfg := Config{ErrorOn: validation.ErrorOnString}.Normalized()

	assert.Equal(t, validation.ErrorOnString, cfg.ErrorOn)
	assert.NotNil(t, cfg.Comparator)
	assert.Equal(t, hints.PlatformWeb, cfg.Platform)
	assert.Equal(t, DefaultValueKey, cfg.ValueKey)
	assert.NotNil(t, cfg.Logger)
	assert.NoError(t, cfg.Validate())

	assert.False(t, cfg.DisableCoerceBack)
	assert.False(t, cfg.DisableTypeMismatchWarning)
	assert.True(t, cfg.HintOptions().InferKeyboard)
}
