package regalloc

import "testing"

func TestCheckProtocolVersionAcceptsSameMajor(t *testing.T) {
	if err := CheckProtocolVersion("1.0.0"); err != nil {
		t.Fatalf("1.0.0 should satisfy the allocator's own protocol version, got %v", err)
	}

	if err := CheckProtocolVersion("1.4.2"); err != nil {
		t.Fatalf("a later 1.x frontend version should be accepted, got %v", err)
	}
}

func TestCheckProtocolVersionRejectsNextMajor(t *testing.T) {
	if err := CheckProtocolVersion("2.0.0"); err == nil {
		t.Fatalf("a 2.x frontend version should be rejected as a breaking change")
	}
}

func TestCheckProtocolVersionRejectsMalformedVersion(t *testing.T) {
	if err := CheckProtocolVersion("not-a-version"); err == nil {
		t.Fatalf("a malformed version string should produce an error, not a silent pass")
	}
}
