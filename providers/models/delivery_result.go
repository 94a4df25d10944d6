package models

import "github.com/morler/codeassist/app_errors"

// DeliveryResult is the outcome of one request/response exchange.
type DeliveryResult struct {
	Success     bool
	WrittenPath string
	// Content is the text written to WrittenPath.
	Content string
	// Tokens is the estimate credited for this request; filled in by the caller.
	Tokens int
	Err    *app_errors.DeliveryError
}

// Failed builds an unsuccessful result.
func Failed(err *app_errors.DeliveryError) DeliveryResult {
	return DeliveryResult{Err: err}
}
