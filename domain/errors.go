package domain

import "errors"

// Error taxonomy shared by every layer. Adapters wrap these with %w and the
// HTTP boundary classifies with errors.Is.
var (
	// ErrInvalidArgument covers bad client input: empty message, unknown
	// personality, malformed pagination or sort arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned on direct lookup of a missing record.
	ErrNotFound = errors.New("not found")

	// ErrUpstream is returned when the model provider call itself fails
	// (network, auth, quota).
	ErrUpstream = errors.New("upstream model error")

	// ErrEmptyResponse is returned when the model answered but the trimmed
	// text was empty.
	ErrEmptyResponse = errors.New("empty response from model")
)
