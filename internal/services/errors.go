package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNotOwner = errors.New("not the owner")
)

// GenerationErrorKind classifies a failed AI generation so callers can show
// the right parent-facing message. Generation failures are terminal: the
// caller surfaces them immediately and never retries.
type GenerationErrorKind string

const (
	KindInvalidCredentials GenerationErrorKind = "invalid_credentials"
	KindQuotaExceeded      GenerationErrorKind = "quota_exceeded"
	KindTransientNetwork   GenerationErrorKind = "transient_network"
	KindMalformedResponse  GenerationErrorKind = "malformed_response"
	KindGeneration         GenerationErrorKind = "generation"
)

type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func newGenerationError(kind GenerationErrorKind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Err: err}
}

// classifyProviderError maps a raw provider failure onto the taxonomy. The
// string checks mirror the messages the Gemini API actually returns.
func classifyProviderError(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key expired") ||
		strings.Contains(msg, "API_KEY_INVALID") ||
		strings.Contains(msg, "API key not valid"):
		return newGenerationError(KindInvalidCredentials, err)
	case strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RATE_LIMIT") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return newGenerationError(KindQuotaExceeded, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") {
		return newGenerationError(KindTransientNetwork, err)
	}

	return newGenerationError(KindGeneration, err)
}
