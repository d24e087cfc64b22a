package middleware

import (
	"context"
	"net/http"
	"strings"

	loginguard "github.com/loginguard/loginguard"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the claims injected by [Guard], if any.
func ClaimsFromContext(ctx context.Context) (*loginguard.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*loginguard.Claims)
	return claims, ok
}

// Guard returns middleware that rejects requests without a valid bearer
// access token.
func Guard(engine *loginguard.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := engine.ValidateToken(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if claims.Kind != loginguard.KindAccess {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
