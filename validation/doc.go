// Package validation bridges go-playground/validator struct-tag validation
// to the application error type, so a malformed document surfaces as a
// structured INVALID_INPUT error with per-field details.
package validation
