// Package config holds the settings every field reads: which check result
// shapes count as failures, how values are compared and coerced, and which
// UI hints are inferred. Configuration is an explicit value; Default
// returns the built-in settings and Load layers a file and the environment
// on top of them.
package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/compare"
	"github.com/goliatone/go-formstate/pkg/hints"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// DefaultValueKey is the props key the field value is exposed under.
const DefaultValueKey = "value"

// ErrComparatorRequired is returned by Validate when no comparator is set.
var ErrComparatorRequired = errors.New("config: comparator is required")

// Config is the per-field configuration. Switches are phrased so that the
// zero value keeps the default behaviour: a Config literal that only sets
// ErrorOn still coerces web input back and warns on type changes.
type Config struct {
	ErrorOn    validation.ErrorOn
	Comparator compare.Func
	// DisableCoerceBack keeps web input values as strings, except for the
	// checked state of checkbox and radio inputs.
	DisableCoerceBack bool
	// CheckAdapter transforms the value before every check.
	CheckAdapter func(any) any
	// Allow vetoes value changes when it returns false.
	Allow                      func(any) bool
	DisableTypeMismatchWarning bool

	DisableKeyboardInference bool
	InferAutoCapitalize      bool
	Platform                 hints.Platform
	ValueKey                 string

	Logger *zap.Logger
}

// Default returns the built-in configuration: errors only, structural
// comparison, back-coercion and type mismatch warnings enabled, keyboard
// inference for the web.
func Default() Config {
	return Config{
		ErrorOn:    validation.ErrorOnError,
		Comparator: compare.Equal,
		Platform:   hints.PlatformWeb,
		ValueKey:   DefaultValueKey,
		Logger:     logging.Default(),
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if err := c.ErrorOn.Validate(); err != nil {
		return err
	}
	if c.Comparator == nil {
		return ErrComparatorRequired
	}
	switch c.Platform {
	case hints.PlatformWeb, hints.PlatformNative:
	default:
		return fmt.Errorf("config: unknown platform %q", c.Platform)
	}
	return nil
}

// Normalized fills the unset comparator, platform, value key and logger
// from Default. ErrorOn is kept as-is so an empty set still fails Validate.
func (c Config) Normalized() Config {
	def := Default()
	if c.Comparator == nil {
		c.Comparator = def.Comparator
	}
	if c.Platform == "" {
		c.Platform = def.Platform
	}
	c.Platform = hints.Platform(strings.ToLower(string(c.Platform)))
	if strings.TrimSpace(c.ValueKey) == "" {
		c.ValueKey = def.ValueKey
	}
	if c.Logger == nil {
		c.Logger = def.Logger
	}
	return c
}

// HintOptions projects the inference toggles.
func (c Config) HintOptions() hints.Options {
	return hints.Options{
		InferKeyboard:       !c.DisableKeyboardInference,
		InferAutoCapitalize: c.InferAutoCapitalize,
		Platform:            c.Platform,
	}
}

// ValidationOptions projects the pipeline settings.
func (c Config) ValidationOptions() validation.Options {
	return validation.Options{
		ErrorOn: c.ErrorOn,
		Adapter: c.CheckAdapter,
		Logger:  c.Logger,
	}
}
