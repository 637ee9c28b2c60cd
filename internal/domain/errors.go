package domain

import "errors"

var (
	// ErrInvalidImage is returned when an uploaded image fails the media-type
	// or size precondition. Checked before any outbound call.
	ErrInvalidImage = errors.New("invalid image")

	// ErrProviderUnavailable is returned when a provider cannot be reached
	// (network, transport, or timeout failure).
	ErrProviderUnavailable = errors.New("analysis provider unavailable")

	// ErrProviderResponseInvalid is returned when a provider replied but the
	// reply did not contain a parseable structured payload.
	ErrProviderResponseInvalid = errors.New("analysis provider response invalid")

	// ErrProviderConfigInvalid is returned when a configured provider is
	// missing a required credential or endpoint.
	ErrProviderConfigInvalid = errors.New("analysis provider configuration invalid")

	// ErrNoStructuredPayload is returned by the response parser when no
	// strategy could extract a single populated field.
	ErrNoStructuredPayload = errors.New("no structured payload found in response")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrHistoryNotFound is returned when a history entry id is unknown
	ErrHistoryNotFound = errors.New("history entry not found")
)
