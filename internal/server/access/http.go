package access

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// UnauthorizedDetail is the only message clients see for any token failure.
const UnauthorizedDetail = "Could not validate credentials"

// WriteUnauthorized sends the uniform 401 response.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": UnauthorizedDetail})
}

// Middleware rejects requests without a valid bearer token and passes the
// rest on with the owner id in the request context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r.Header.Get(common.AuthorizationHeaderName))

		ctx, _, err := g.Authenticate(r.Context(), token)
		if err != nil {
			WriteUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
