package token

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	issuer := NewIssuer(key, time.Hour)
	verifier := NewVerifier(&key.PublicKey)

	tok, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	uid, err := verifier.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if uid != "user-123" {
		t.Fatalf("user id mismatch: got %q want %q", uid, "user-123")
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	issuer := NewIssuer(key, -time.Second)
	verifier := NewVerifier(&key.PublicKey)

	tok, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyWrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer(testKey(t), time.Hour)
	verifier := NewVerifier(&testKey(t).PublicKey)

	tok, err := issuer.Issue("u2")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(tok); err == nil {
		t.Fatal("expected error for token signed with a different key")
	}
}

func TestVerifyRejectsHMACForgery(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	verifier := NewVerifier(&key.PublicKey)

	// forged token signed with HS256 using the public key bytes as secret
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User:             UserClaim{ID: "u3"},
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := forged.SignedString([]byte("not-the-private-key"))
	if err != nil {
		t.Fatalf("sign forgery: %v", err)
	}

	if _, err := verifier.Verify(signed); err == nil {
		t.Fatal("expected HS256-signed token to be rejected")
	}
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier(&testKey(t).PublicKey)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := verifier.Verify(tok); err == nil {
			t.Fatalf("expected error for malformed token %q", tok)
		}
	}
}
