package agent

import (
	"context"
	"errors"
	"fmt"
)

// Runtime executes one agent task against a language-model provider and
// returns the raw text output. The task description carries everything
// the agent needs, including the material under analysis.
// Implementations do not retry; provider failures surface immediately to
// the caller.
type Runtime interface {
	Run(ctx context.Context, cfg Config, task string) (string, error)
}

// ModelError indicates the provider failed to produce a completion. It
// is recorded per message and does not abort the run.
type ModelError struct {
	Status int
	Err    error
}

func (e *ModelError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model request failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("model request failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// IsModelError reports whether err (or any error in its chain) is a ModelError.
func IsModelError(err error) bool {
	var modelErr *ModelError
	return errors.As(err, &modelErr)
}

// QuotaError indicates the provider rejected the request for rate or
// credit exhaustion. Recorded per message like ModelError, but kept
// distinct so callers can tell billing problems from provider outages.
type QuotaError struct {
	Err error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("model quota exhausted: %v", e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }

// IsQuotaError reports whether err is a QuotaError.
func IsQuotaError(err error) bool {
	var quotaErr *QuotaError
	return errors.As(err, &quotaErr)
}
