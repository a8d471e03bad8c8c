package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "secret1" || digest == "" {
		t.Fatalf("digest must not equal or leak the plaintext")
	}
	if !Verify("secret1", digest) {
		t.Fatalf("expected Verify to accept the original password")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	digest, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if Verify("wrong", digest) {
		t.Fatalf("expected Verify to reject a wrong password")
	}
}

func TestVerify_MalformedDigest(t *testing.T) {
	if Verify("secret1", "not-a-bcrypt-digest") {
		t.Fatalf("expected Verify to reject a malformed digest")
	}
	if Verify("secret1", "") {
		t.Fatalf("expected Verify to reject an empty digest")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	a, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (per-call salt)")
	}
}

func TestHashToken(t *testing.T) {
	h := HashToken("some.refresh.token")
	if len(h) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(h))
	}
	if h != HashToken("some.refresh.token") {
		t.Fatalf("token digest must be deterministic")
	}
	if h == HashToken("other.refresh.token") {
		t.Fatalf("different tokens must not collide")
	}
	if strings.Contains(h, "some") {
		t.Fatalf("digest must not leak the token")
	}
}
