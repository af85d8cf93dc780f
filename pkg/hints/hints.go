// Package hints infers advisory input hints (keyboard or input mode, auto
// capitalization) from a field's name and value type. The hints are a
// convenience for renderers and play no part in validation.
package hints

import (
	"reflect"
	"sort"
	"strings"
)

// Platform selects the hint vocabulary.
type Platform string

const (
	PlatformWeb    Platform = "web"
	PlatformNative Platform = "native"
)

// Hint keys emitted by Infer.
const (
	KeyInputMode      = "inputMode"
	KeyKeyboardType   = "keyboardType"
	KeyAutoCapitalize = "autoCapitalize"
)

// Auto-capitalization classes, shared by both platforms.
const (
	CapitalizeNone      = "none"
	CapitalizeSentences = "sentences"
	CapitalizeWords     = "words"
)

type keyboardKind int

const (
	keyboardDefault keyboardKind = iota
	keyboardPhone
	keyboardNumber
	keyboardDecimal
	keyboardEmail
	keyboardURL
	keyboardSearch
)

var keyboards = map[Platform]map[keyboardKind]string{
	PlatformNative: {
		keyboardPhone:   "phone-pad",
		keyboardNumber:  "numeric",
		keyboardDecimal: "decimal-pad",
		keyboardEmail:   "email-address",
		keyboardURL:     "url",
		keyboardDefault: "default",
		keyboardSearch:  "web-search",
	},
	PlatformWeb: {
		keyboardPhone:   "tel",
		keyboardNumber:  "numeric",
		keyboardDecimal: "decimal",
		keyboardEmail:   "email",
		keyboardURL:     "url",
		keyboardDefault: "text",
		keyboardSearch:  "search",
	},
}

var hintKeys = []string{KeyInputMode, KeyKeyboardType, KeyAutoCapitalize}

// Options toggles inference.
type Options struct {
	InferKeyboard       bool
	InferAutoCapitalize bool
	Platform            Platform
}

// AllowedKeys returns a sorted copy of the hint keys Infer may emit.
func AllowedKeys() []string {
	keys := append([]string(nil), hintKeys...)
	sort.Strings(keys)
	return keys
}

// KeyboardKey returns the hint key used for keyboard hints on platform.
func KeyboardKey(platform Platform) string {
	if normalizePlatform(platform) == PlatformNative {
		return KeyKeyboardType
	}
	return KeyInputMode
}

// Infer returns the enabled hints for a field, or nil when none are.
func Infer(name string, value any, opts Options) map[string]string {
	if !opts.InferKeyboard && !opts.InferAutoCapitalize {
		return nil
	}
	out := make(map[string]string, 2)
	if opts.InferAutoCapitalize {
		out[KeyAutoCapitalize] = AutoCapitalize(name, value)
	}
	if opts.InferKeyboard {
		out[KeyboardKey(opts.Platform)] = Keyboard(name, value, opts.Platform)
	}
	return out
}

// Keyboard guesses the keyboard (native) or input mode (web) for a field.
func Keyboard(name string, value any, platform Platform) string {
	vocabulary := keyboards[normalizePlatform(platform)]
	query := strings.ToLower(name)

	switch {
	case isNumber(value):
		switch {
		case containsAny(query, "phone", "tel"):
			return vocabulary[keyboardPhone]
		case containsAny(query, "age", "pin", "otp", "zip", "number"):
			return vocabulary[keyboardNumber]
		default:
			return vocabulary[keyboardDecimal]
		}
	case isString(value):
		switch {
		case containsAny(query, "email"):
			return vocabulary[keyboardEmail]
		case containsAny(query, "phone"):
			return vocabulary[keyboardPhone]
		case isURLName(query):
			return vocabulary[keyboardURL]
		case containsAny(query, "search"):
			return vocabulary[keyboardSearch]
		}
	}
	return vocabulary[keyboardDefault]
}

// AutoCapitalize guesses the auto-capitalization class for a field.
func AutoCapitalize(name string, value any) string {
	if !isString(value) {
		return CapitalizeSentences
	}
	query := strings.ToLower(name)
	switch {
	case containsAny(query, "email", "password", "phone"):
		return CapitalizeNone
	case containsAny(query, "name"):
		return CapitalizeWords
	case isURLName(query):
		return CapitalizeNone
	default:
		return CapitalizeSentences
	}
}

func normalizePlatform(platform Platform) Platform {
	if Platform(strings.ToLower(string(platform))) == PlatformNative {
		return PlatformNative
	}
	return PlatformWeb
}

func isURLName(query string) bool {
	return containsAny(query, "link", "url", "uri", "website")
}

func containsAny(query string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(query, needle) {
			return true
		}
	}
	return false
}

func isNumber(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isString(value any) bool {
	return value != nil && reflect.TypeOf(value).Kind() == reflect.String
}
