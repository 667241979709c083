// Package api exposes the JSON REST interface. It owns the ingestion
// boundary: request bodies are decoded into explicit structs and validated
// before anything reaches the store or the ledger; whatever does not parse
// is rejected.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitpal/splitpal/internal/currency"
	"github.com/splitpal/splitpal/internal/ledger"
	"github.com/splitpal/splitpal/internal/payments"
	"github.com/splitpal/splitpal/internal/storage"
)

// Server bundles the collaborators the handlers need.
type Server struct {
	store   storage.Store
	rates   *currency.Service
	gateway *payments.Gateway
}

// NewServer creates a Server over the given collaborators.
func NewServer(store storage.Store, rates *currency.Service, gateway *payments.Gateway) *Server {
	return &Server{store: store, rates: rates, gateway: gateway}
}

// Register mounts all API routes on the mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/groups", s.handleListGroups)
	mux.HandleFunc("POST /api/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/groups/{id}", s.handleGetGroup)
	mux.HandleFunc("POST /api/groups/{id}/members", s.handleAddMember)
	mux.HandleFunc("PATCH /api/members/{id}", s.handleUpdateMember)
	mux.HandleFunc("POST /api/groups/{id}/expenses", s.handleAddExpense)
	mux.HandleFunc("GET /api/groups/{id}/balances", s.handleGetBalances)
	mux.HandleFunc("GET /api/groups/{id}/balances/simplified", s.handleGetSimplifiedBalances)
	mux.HandleFunc("POST /api/groups/{id}/settlements", s.handleCreateSettlement)
	mux.HandleFunc("POST /api/payments/orders", s.handleCreatePaymentOrder)
	mux.HandleFunc("POST /api/payments/verify", s.handleVerifyPayment)
	mux.HandleFunc("GET /api/currencies", s.handleListCurrencies)
	mux.HandleFunc("GET /api/currencies/rates", s.handleGetRates)
	mux.HandleFunc("POST /api/currencies/convert", s.handleConvert)
	mux.HandleFunc("POST /api/scan/bill", s.handleScanBill)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decode parses a JSON request body into dst, rejecting unknown fields.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeStoreError maps storage failures: missing rows become 404, anything
// else is a generic 500 with the specific cause logged for operators.
func writeStoreError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, what+" not found")
		return
	}
	slog.Error("Store operation failed", "what", what, "error", err)
	writeError(w, http.StatusInternalServerError, "failed to access "+what)
}

// writeValidationError surfaces field-specific validation messages as 400s.
func writeValidationError(w http.ResponseWriter, err error) bool {
	var vErr *ledger.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, vErr.Error())
		return true
	}
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
