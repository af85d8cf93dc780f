// Package validation runs check functions against field values and turns
// their heterogeneous results into FieldError values.
//
// A check either returns an error (or panics), returns a string, returns a
// bool, or returns anything else. Which of those shapes count as failures
// is selected with an ErrorOn set; Classify is the pure mapping from a raw
// result to an Outcome and Run applies it to an ordered list of checks.
// Failures never escape Run as errors: they are reported in Report.Errors.
package validation
