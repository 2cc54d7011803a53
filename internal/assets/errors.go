package assets

import "errors"

var (
	// ErrMalformedPayload marks an inline payload that fails to parse.
	ErrMalformedPayload = errors.New("malformed inline payload")
	// ErrMalformedReference marks a reference token with an invalid identifier.
	ErrMalformedReference = errors.New("malformed asset reference")
	// ErrDisallowedMimeType marks a payload whose mime type is not allowed.
	ErrDisallowedMimeType = errors.New("mime type not allowed")
	// ErrPayloadTooLarge marks a payload exceeding the configured size limit.
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrImageRequired marks non-image content submitted to an image-only field.
	ErrImageRequired = errors.New("field requires an image")
	// ErrNotFound marks a blob id that does not resolve to a stored blob.
	ErrNotFound = errors.New("asset not found")
)
