package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devconnect/api/internal/token"
)

func newVerifierPair(t *testing.T) (token.Issuer, token.Verifier) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return token.NewIssuer(key, time.Hour), token.NewVerifier(&key.PublicKey)
}

func protectedHandler(t *testing.T, gotUserID *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMissingToken(t *testing.T) {
	_, verifier := newVerifierPair(t)
	var uid string
	h := Auth(verifier)(protectedHandler(t, &uid))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["msg"] != "No token, authorization denied" {
		t.Fatalf("unexpected msg %q", body["msg"])
	}
}

func TestAuthInvalidToken(t *testing.T) {
	_, verifier := newVerifierPair(t)
	var uid string
	h := Auth(verifier)(protectedHandler(t, &uid))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderToken, "not-a-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["msg"] != "Token is not valid" {
		t.Fatalf("unexpected msg %q", body["msg"])
	}
}

func TestAuthValidTokenInjectsUserID(t *testing.T) {
	issuer, verifier := newVerifierPair(t)
	var uid string
	h := Auth(verifier)(protectedHandler(t, &uid))

	tok, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderToken, tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if uid != "user-42" {
		t.Fatalf("expected user id in context, got %q", uid)
	}
}
