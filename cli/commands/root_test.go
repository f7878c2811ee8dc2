package commands

import (
	"errors"
	"testing"

	"github.com/enosislabs/rainy-go/core"
)

func TestExitError(t *testing.T) {
	err := exitWithCode(ExitValidation, errors.New("test error"))

	if err.Error() != "test error" {
		t.Errorf("Error() = %q, want 'test error'", err.Error())
	}

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatal("expected *exitError type")
	}

	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), ExitValidation)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"success", ExitSuccess, 0},
		{"validation", ExitValidation, 1},
		{"api", ExitAPI, 2},
		{"network", ExitNetwork, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("Exit%s = %d, want %d", tt.name, tt.code, tt.want)
			}
		})
	}
}

func TestAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"network", &core.APIError{Code: "NETWORK_ERROR", Err: core.ErrNetwork}, ExitNetwork},
		{"timeout", &core.APIError{Code: "TIMEOUT", Err: core.ErrTimeout}, ExitNetwork},
		{"validation", &core.APIError{Code: "INVALID_REQUEST", Err: core.ErrInvalidRequest}, ExitValidation},
		{"auth", &core.APIError{Code: "INVALID_API_KEY", Err: core.ErrAuthentication}, ExitAPI},
		{"rate limit", &core.APIError{Code: "RATE_LIMIT_EXCEEDED", Err: core.ErrRateLimited}, ExitAPI},
		{"opaque", errors.New("boom"), ExitAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apiError(tt.err)

			exitErr, ok := err.(*exitError)
			if !ok {
				t.Fatal("expected *exitError type")
			}
			if exitErr.ExitCode() != tt.want {
				t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("mapped error should wrap the original: %v", err)
			}
		})
	}
}

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}
