package validation

import "testing"

func TestContentDigest(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	d1 := ContentDigest(data)
	d2 := ContentDigest(data)
	if d1 != d2 {
		t.Errorf("digest is not deterministic: %s != %s", d1, d2)
	}
	if len(d1) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(d1))
	}
	for _, c := range d1 {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("digest contains non-hex character %q", c)
		}
	}
}

func TestContentDigest_SingleBitDifference(t *testing.T) {
	a := make([]byte, 64*1024)
	b := make([]byte, 64*1024)
	copy(a, "resume body")
	copy(b, "resume body")
	b[len(b)-1] ^= 0x01

	if ContentDigest(a) == ContentDigest(b) {
		t.Error("digests of inputs differing by one bit must differ")
	}
}

func TestContentDigest_Empty(t *testing.T) {
	// SHA-256 of the empty string, pinned so an accidental algorithm swap
	// shows up immediately.
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := ContentDigest(nil); got != want {
		t.Errorf("ContentDigest(nil) = %s, want %s", got, want)
	}
}
