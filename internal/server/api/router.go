package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the HTTP routing table. /api/records requires a bearer
// token; /api/login and /health are open.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/login", h.Login).Methods(http.MethodPost)

	guarded := r.PathPrefix("/api/records").Subrouter()
	guarded.Use(h.authMiddleware)
	guarded.HandleFunc("", h.AppendRecord).Methods(http.MethodPost)
	guarded.HandleFunc("", h.ListRecords).Methods(http.MethodGet)

	return r
}
