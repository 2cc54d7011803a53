package assets

import "testing"

func TestPolicyAllowsType(t *testing.T) {
	policy := NewPolicy(1024, []string{"image/png", " Image/JPEG "})

	if !policy.AllowsType("image/png") {
		t.Fatal("expected image/png to be allowed")
	}
	if !policy.AllowsType("IMAGE/JPEG") {
		t.Fatal("allow-list matching should be case-insensitive")
	}
	if policy.AllowsType("image/tiff") {
		t.Fatal("expected image/tiff to be rejected")
	}
	if policy.AllowsType("") {
		t.Fatal("expected empty mime type to be rejected")
	}
}

func TestPolicyWithinSize(t *testing.T) {
	policy := NewPolicy(10, nil)
	if !policy.WithinSize(10) {
		t.Fatal("payload at the ceiling should pass")
	}
	if policy.WithinSize(11) {
		t.Fatal("payload over the ceiling should fail")
	}

	unbounded := NewPolicy(0, nil)
	if !unbounded.WithinSize(1 << 30) {
		t.Fatal("zero ceiling disables the size check")
	}
}
