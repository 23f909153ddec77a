package api

import (
	"net/http"
	"strings"

	"github.com/cjmtools/caseintake/internal/common"
	"github.com/cjmtools/caseintake/internal/server/auth"
)

// authMiddleware rejects requests without a valid bearer token.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if _, err := auth.GetStationIDFromToken(token, h.secretKey); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
