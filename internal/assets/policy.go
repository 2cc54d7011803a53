package assets

import "strings"

// Policy holds the validation limits applied to inline payloads.
type Policy struct {
	MaxBytes     int64
	allowedTypes map[string]struct{}
}

// NewPolicy builds a Policy from a size ceiling and a mime allow-list.
func NewPolicy(maxBytes int64, allowedTypes []string) Policy {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		if trimmed := strings.ToLower(strings.TrimSpace(t)); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	return Policy{MaxBytes: maxBytes, allowedTypes: allowed}
}

// AllowsType reports whether the mime type is on the allow-list.
func (p Policy) AllowsType(mimeType string) bool {
	_, ok := p.allowedTypes[strings.ToLower(strings.TrimSpace(mimeType))]
	return ok
}

// WithinSize reports whether a decoded payload of n bytes fits the ceiling.
func (p Policy) WithinSize(n int) bool {
	return p.MaxBytes <= 0 || int64(n) <= p.MaxBytes
}
