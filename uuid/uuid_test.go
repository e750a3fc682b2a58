package uuid

import "testing"

func TestNewV4(t *testing.T) {
	id := NewV4()

	if id.Version() != 4 {
		t.Errorf("Expected version 4, got %d", id.Version())
	}
	if id[8]&0xc0 != 0x80 {
		t.Errorf("Expected RFC 4122 variant, got %08b", id[8])
	}
}

func TestUUIDString(t *testing.T) {
	id := NewV4()

	s := id.String()
	if len(s) != 36 {
		t.Errorf("Expected 36 characters, got %d (%s)", len(s), s)
	}
	for _, pos := range []int{8, 13, 18, 23} {
		if s[pos] != '-' {
			t.Errorf("Expected dash at position %d in %s", pos, s)
		}
	}
}

func TestNewV4Uniqueness(t *testing.T) {
	seen := make(map[UUID]bool)
	for i := 0; i < 1000; i++ {
		id := NewV4()
		if seen[id] {
			t.Fatalf("duplicate UUID generated: %s", id)
		}
		seen[id] = true
	}
}
