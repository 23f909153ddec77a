// Package api exposes the storage service over JSON/HTTP: a passcode login
// endpoint and bearer-guarded record endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cjmtools/caseintake/internal/common"
	"github.com/cjmtools/caseintake/internal/logging"
	"github.com/cjmtools/caseintake/internal/models"
	"github.com/cjmtools/caseintake/internal/server/auth"
	"github.com/cjmtools/caseintake/internal/server/cases"
)

// CaseService is the slice of the service layer the handlers need.
type CaseService interface {
	Append(ctx context.Context, in cases.AppendInput) (*models.CaseRecord, error)
	ListAll(ctx context.Context) ([]models.CaseRecord, error)
}

// Handler serves the intake API.
type Handler struct {
	service       CaseService
	passcodeHash  string
	secretKey     []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

func NewHandler(service CaseService, passcodeHash string, secretKey []byte, tokenValidity time.Duration, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Handler{
		service:       service,
		passcodeHash:  passcodeHash,
		secretKey:     secretKey,
		tokenValidity: tokenValidity,
		logger:        logger.With("module", "api"),
	}
}

type loginRequest struct {
	Passcode string `json:"passcode"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login verifies the shared passcode and issues an access token. A failed
// check answers 401 without detail.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !auth.CheckPasscode(h.passcodeHash, req.Passcode) {
		h.logger.Warn(r.Context(), "login rejected")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(uuid.NewString(), h.secretKey, h.tokenValidity)
	if err != nil {
		h.logger.Error(r.Context(), "token generation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

type appendRequest struct {
	Name        string  `json:"name"`
	CaseNumber  string  `json:"case_number"`
	CrimeNumber *string `json:"crime_number"`
	ForwardDate *string `json:"forward_date"`
	ManualNote  string  `json:"manual_note"`
}

// AppendRecord stores one record and echoes it back with its server-assigned
// identity.
func (h *Handler) AppendRecord(w http.ResponseWriter, r *http.Request) {
	var req appendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.service.Append(r.Context(), cases.AppendInput{
		Name:        req.Name,
		CaseNumber:  req.CaseNumber,
		CrimeNumber: req.CrimeNumber,
		ForwardDate: req.ForwardDate,
		ManualNote:  req.ManualNote,
	})
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// ListRecords returns every stored record.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListAll(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.CaseRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Health answers liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
