package app_errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileReadError_Unwrap(t *testing.T) {
	err := fmt.Errorf("building request: %w", &FileReadError{Path: "a.py", Err: fs.ErrNotExist})

	var readErr *FileReadError
	assert.True(t, errors.As(err, &readErr))
	assert.Equal(t, "a.py", readErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "a.py")
}

func TestDeliveryError_Message(t *testing.T) {
	statusErr := &DeliveryError{StatusCode: 500, Body: "boom"}
	assert.Equal(t, "API request failed with status code '500' - boom", statusErr.Error())

	transportErr := &DeliveryError{Err: errors.New("connection refused")}
	assert.Equal(t, "API request failed: connection refused", transportErr.Error())
	assert.ErrorContains(t, transportErr.Unwrap(), "connection refused")

	readErr := &DeliveryError{StatusCode: 200, Err: errors.New("unexpected EOF")}
	assert.Equal(t, "API request failed with status code '200': unexpected EOF", readErr.Error())
}
