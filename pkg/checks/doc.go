// Package checks provides ready-made check functions: contact formats
// (email, phone), typed bounds and lengths, and the rule vocabulary used by
// schema documents (min, max, minLength, maxLength, pattern, required,
// email, phone, enum). SanitizeHTML is a check adapter that strips markup
// before checks run.
package checks
