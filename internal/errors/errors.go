// Package errors defines the stable error codes and the coded error
// type used across the analysis pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code.
type Code string

const (
	// ParseFailure indicates malformed source. The file is excluded
	// from metrics with a warning; the run continues.
	ParseFailure Code = "PARSE_FAILURE"

	// UnsupportedLanguage indicates complexity is undefined for a
	// file's extension. Not a failure: the value is absent, which is
	// distinct from a parse failure.
	UnsupportedLanguage Code = "UNSUPPORTED_LANGUAGE"

	// MissingExternalData indicates the churn/ownership collector
	// failed for a file. Only that KPI is absent; everything else is
	// unaffected.
	MissingExternalData Code = "MISSING_EXTERNAL_DATA"

	// AggregationInputEmpty indicates a directory had no contributing
	// values for a KPI. The aggregate is absent, never zero.
	AggregationInputEmpty Code = "AGGREGATION_INPUT_EMPTY"

	// RegistryMisconfigured indicates a malformed or missing rule
	// table at startup. Fatal: the run fails before any file is
	// analyzed, since a partial rule table would corrupt every result.
	RegistryMisconfigured Code = "REGISTRY_MISCONFIGURED"

	// InternalError indicates an unexpected failure.
	InternalError Code = "INTERNAL_ERROR"
)

// AnalysisError is an error with a stable code and an optional cause.
type AnalysisError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

// New creates an AnalysisError.
func New(code Code, message string, cause error) *AnalysisError {
	return &AnalysisError{Code: code, Message: message, cause: cause}
}

// Newf creates an AnalysisError with a formatted message and no cause.
func Newf(code Code, format string, args ...interface{}) *AnalysisError {
	return &AnalysisError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AnalysisError) Unwrap() error {
	return e.cause
}

// CodeOf extracts the code from err, or InternalError if err carries none.
func CodeOf(err error) Code {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return InternalError
}

// IsFatal reports whether err must abort the whole run. Everything
// except registry misconfiguration is recovered locally.
func IsFatal(err error) bool {
	return CodeOf(err) == RegistryMisconfigured
}
