package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := stderrors.New("syntax error at line 3")
	err := New(ParseFailure, "failed to parse file", cause)

	msg := err.Error()
	if !strings.Contains(msg, "PARSE_FAILURE") {
		t.Errorf("expected code in message, got %q", msg)
	}
	if !strings.Contains(msg, "syntax error at line 3") {
		t.Errorf("expected cause in message, got %q", msg)
	}

	bare := Newf(UnsupportedLanguage, "no rules for %s", ".xyz")
	if strings.Contains(bare.Error(), "<nil>") {
		t.Errorf("nil cause leaked into message: %q", bare.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := New(MissingExternalData, "churn collection failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(AggregationInputEmpty, "no values", nil)); got != AggregationInputEmpty {
		t.Errorf("expected AggregationInputEmpty, got %s", got)
	}
	if got := CodeOf(stderrors.New("plain")); got != InternalError {
		t.Errorf("expected InternalError for uncoded error, got %s", got)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(New(RegistryMisconfigured, "bad table", nil)) {
		t.Error("registry misconfiguration must be fatal")
	}
	for _, code := range []Code{ParseFailure, UnsupportedLanguage, MissingExternalData, AggregationInputEmpty} {
		if IsFatal(New(code, "x", nil)) {
			t.Errorf("%s must be recoverable", code)
		}
	}
}
