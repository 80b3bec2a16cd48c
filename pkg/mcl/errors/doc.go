// Package errors provides rich error types for MCL parsing, writing, and
// schema marshalling.
//
// Every failure carries an [ErrorType] category, a message, an optional
// source [value.Location], and an optional suggestion for fixing the input.
// [ErrorList] accumulates multiple errors; the schema engine uses it to
// report every failing array element in a single pass.
package errors
