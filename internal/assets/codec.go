// Package assets stores profile media payloads out of band. Document fields
// carry either plain text, an inline data URI, or an opaque "asset:<id>"
// reference into the blob store; this package converts between the three
// forms and persists the blobs.
package assets

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// RefPrefix is the fixed prefix of a stored asset reference token.
	RefPrefix = "asset:"

	inlinePrefix    = "data:"
	inlineImage     = "data:image/"
	inlineSeparator = ";base64,"
)

// IsInlinePayload reports whether value is a base64 image data URI.
func IsInlinePayload(value string) bool {
	return strings.HasPrefix(value, inlineImage) && strings.Contains(value, inlineSeparator)
}

// IsReferenceToken reports whether value is a well-formed asset reference.
func IsReferenceToken(value string) bool {
	_, err := ExtractReferenceID(value)
	return err == nil
}

// ParseInlinePayload splits a data URI into its mime type and decoded bytes.
func ParseInlinePayload(value string) (string, []byte, error) {
	if !strings.HasPrefix(value, inlinePrefix) {
		return "", nil, fmt.Errorf("%w: missing data prefix", ErrMalformedPayload)
	}
	header, encoded, found := strings.Cut(value, ",")
	if !found {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrMalformedPayload)
	}
	mimeType := strings.TrimPrefix(header, inlinePrefix)
	if idx := strings.IndexByte(mimeType, ';'); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return mimeType, data, nil
}

// ExtractReferenceID parses the blob id out of a reference token.
func ExtractReferenceID(value string) (uuid.UUID, error) {
	if !strings.HasPrefix(value, RefPrefix) {
		return uuid.Nil, fmt.Errorf("%w: missing prefix", ErrMalformedReference)
	}
	id, err := uuid.Parse(strings.TrimPrefix(value, RefPrefix))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrMalformedReference, err)
	}
	return id, nil
}

// FormatReferenceToken renders the reference token for a blob id.
func FormatReferenceToken(id uuid.UUID) string {
	return RefPrefix + id.String()
}

// FormatInlinePayload renders a data URI for the given mime type and bytes.
func FormatInlinePayload(mimeType string, data []byte) string {
	var b strings.Builder
	b.Grow(len(inlinePrefix) + len(mimeType) + len(inlineSeparator) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString(inlinePrefix)
	b.WriteString(mimeType)
	b.WriteString(inlineSeparator)
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// IsImageMime reports whether mimeType denotes an image.
func IsImageMime(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "image/")
}
