package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "bad header: %q", "1")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}
	if got, want := err.Error(), `INVALID_FORMAT: bad header: "1"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("device lost")
	err := Wrap(ErrCodeSolverFailed, cause, "variant %s", "track_50k")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if got, want := err.Error(), "SOLVER_FAILED: variant track_50k: device lost"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeInvalidFormat, "x"), ErrCodeInvalidFormat, true},
		{"DifferentCode", New(ErrCodeInvalidFormat, "x"), ErrCodeNoEngine, false},
		{"PlainError", stderrors.New("x"), ErrCodeInvalidFormat, false},
		{"WrappedInFmt", fmt.Errorf("outer: %w", New(ErrCodeNoSolution, "x")), ErrCodeNoSolution, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "x")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("x")); got != "" {
		t.Errorf("GetCode = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad value")); got != "bad value" {
		t.Errorf("UserMessage = %q, want %q", got, "bad value")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q, want %q", got, "plain")
	}
}

func TestValidateSolveParams(t *testing.T) {
	tests := []struct {
		name    string
		k       uint32
		epsilon float64
		effort  uint32
		wantErr bool
	}{
		{"Defaults", 64, 0.03, 2, false},
		{"MinimalK", 2, 0, 0, false},
		{"MaxEffort", 4, 0.1, 5, false},
		{"KTooSmall", 1, 0.03, 2, true},
		{"KZero", 0, 0.03, 2, true},
		{"NegativeEpsilon", 64, -0.1, 2, true},
		{"EffortTooHigh", 64, 0.03, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSolveParams(tt.k, tt.epsilon, tt.effort)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSolveParams() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidParams) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidParams)
			}
		})
	}
}

func TestValidateTrack(t *testing.T) {
	if err := ValidateTrack(0); err == nil {
		t.Error("ValidateTrack(0) should fail")
	}
	if err := ValidateTrack(10000); err != nil {
		t.Errorf("ValidateTrack(10000) = %v, want nil", err)
	}
}
