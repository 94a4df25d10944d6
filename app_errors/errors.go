package app_errors

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when the project root or another required setting is unusable.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoEligibleFiles is returned when a scan finds nothing to process.
	ErrNoEligibleFiles = errors.New("no eligible files")
	// ErrMissingPrompt is returned when the instruction text for a task is empty.
	ErrMissingPrompt = errors.New("missing prompt")
	// ErrEstimationUnavailable is returned when no tokenizer is known for the model.
	ErrEstimationUnavailable = errors.New("token estimation unavailable")
	// ErrInvalidMode is returned for a task mode other than readme, analyze or all.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrEmptyContent marks a file with no text; no request is built for it.
	ErrEmptyContent = errors.New("empty file content")
)

// FileReadError wraps a failure to read a discovered file.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file: %s, error: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// DeliveryError describes a failed exchange with the chat endpoint. StatusCode is zero
// when the failure happened below the HTTP layer.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 && e.Err != nil {
		return fmt.Sprintf("API request failed with status code '%d': %v", e.StatusCode, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("API request failed with status code '%d' - %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API request failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
