package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/hints"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// EnvPrefix prefixes environment overrides, e.g. FORMSTATE_ERRORON.
const EnvPrefix = "FORMSTATE"

// File is the serializable subset of Config.
type File struct {
	ErrorOn             []string `mapstructure:"errorOn"`
	CoerceBack          bool     `mapstructure:"coerceBack"`
	WarnOnTypeMismatch  bool     `mapstructure:"warnOnTypeMismatch"`
	InferKeyboard       bool     `mapstructure:"inferKeyboard"`
	InferAutoCapitalize bool     `mapstructure:"inferAutoCapitalize"`
	Platform            string   `mapstructure:"platform"`
	ValueKey            string   `mapstructure:"valueKey"`
	Log                 LogFile  `mapstructure:"log"`
}

// LogFile holds logger settings.
type LogFile struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path (optional; YAML, JSON or TOML) and
// FORMSTATE_* environment variables, on top of the defaults. A missing file
// is not an error; a malformed one is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("errorOn", []string{"error"})
	v.SetDefault("coerceBack", true)
	v.SetDefault("warnOnTypeMismatch", true)
	v.SetDefault("inferKeyboard", true)
	v.SetDefault("inferAutoCapitalize", false)
	v.SetDefault("platform", string(hints.PlatformWeb))
	v.SetDefault("valueKey", DefaultValueKey)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return file.Config()
}

// Config converts the file form into a validated Config.
func (f File) Config() (Config, error) {
	errorOn, err := validation.ParseErrorOn(f.ErrorOn...)
	if err != nil {
		return Config{}, fmt.Errorf("config: errorOn: %w", err)
	}

	logger, err := logging.New(f.Log.Level, f.Log.Format)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.ErrorOn = errorOn
	cfg.DisableCoerceBack = !f.CoerceBack
	cfg.DisableTypeMismatchWarning = !f.WarnOnTypeMismatch
	cfg.DisableKeyboardInference = !f.InferKeyboard
	cfg.InferAutoCapitalize = f.InferAutoCapitalize
	cfg.Platform = hints.Platform(strings.ToLower(strings.TrimSpace(f.Platform)))
	cfg.ValueKey = f.ValueKey
	cfg.Logger = logger

	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
