// Package field implements the per-field state machine.
//
// A Field owns one value, its interaction flags and its checks. It has a
// single live state and two transitions, change and blur, which share one
// mutation routine: coerce the notification, skip redundant updates,
// consult the allow gate, store the value and re-run the validation
// pipeline. Fields are validated at construction so a field can start out
// invalid. State returns an immutable snapshot; Status returns the untyped
// view forms aggregate over.
package field
