// Package coerce turns change notifications back into native field values.
//
// UI toolkits report input changes in different shapes: web inputs hand
// over a target descriptor whose value is always a string, native text
// inputs hand over a text payload, and programmatic updates hand over the
// value itself. Notification is a closed union over those shapes (plus the
// inert EmptyEvent) and Extract resolves it once, undoing the string
// coercion web inputs apply based on the input type.
package coerce
