package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Class partitions provider errors for the retry loop.
type Class string

const (
	// ClassRateLimited: quota/resource-exhausted (HTTP 429). Retryable.
	ClassRateLimited Class = "rate_limited"
	// ClassUnavailable: transient server error (HTTP 503 and friends). Retryable.
	ClassUnavailable Class = "unavailable"
	// ClassFatal: everything else (invalid argument, not found, permission).
	ClassFatal Class = "fatal"
)

// ErrRateLimited indicates the provider returned a quota/limit error (HTTP 429 or similar).
var ErrRateLimited = errors.New("ai rate limited")

// ErrUnavailable indicates a transient provider outage (HTTP 503 or similar).
var ErrUnavailable = errors.New("ai service unavailable")

// Classify inspects an error's sentinel chain and textual signature and
// assigns it a Class. Unknown errors are fatal for the current model.
func Classify(err error) Class {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrRateLimited) {
		return ClassRateLimited
	}
	if errors.Is(err, ErrUnavailable) {
		return ClassUnavailable
	}
	s := err.Error()
	if strings.Contains(s, "429") || strings.Contains(s, "ResourceExhausted") || strings.Contains(s, "rate limit") {
		return ClassRateLimited
	}
	if strings.Contains(s, "503") || strings.Contains(s, "ServiceUnavailable") || strings.Contains(s, "server_error") {
		return ClassUnavailable
	}
	return ClassFatal
}

// Retryable reports whether the same model may be attempted again.
func (c Class) Retryable() bool {
	return c == ClassRateLimited || c == ClassUnavailable
}

// ExhaustedError is the terminal failure after every candidate model has
// been tried. It carries the last model attempted and that error's class.
type ExhaustedError struct {
	Model string
	Class Class
	Err   error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all models exhausted: last model %s failed (%s): %v", e.Model, e.Class, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }
