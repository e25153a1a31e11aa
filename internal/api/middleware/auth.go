package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/devconnect/api/internal/token"
)

type userKeyType string

const UserIDKey userKeyType = "user_id"

// HeaderToken is the fixed request header carrying the identity token.
const HeaderToken = "x-auth-token"

// Auth verifies the x-auth-token header and adds the resolved user id to the
// request context. Verification is local; no network call is made.
func Auth(verifier token.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := r.Header.Get(HeaderToken)
			if tok == "" {
				unauthorized(w, "No token, authorization denied")
				return
			}
			uid, err := verifier.Verify(tok)
			if err != nil {
				unauthorized(w, "Token is not valid")
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated user id from context.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
