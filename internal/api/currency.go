package api

import (
	"net/http"
	"time"

	"github.com/splitpal/splitpal/internal/currency"
)

func (s *Server) handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currency.Supported())
}

type ratesResponse struct {
	BaseCurrency string             `json:"base_currency"`
	Rates        map[string]float64 `json:"rates"`
	LastUpdated  string             `json:"last_updated,omitempty"`
}

func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		base = "INR"
	}
	if _, ok := currency.InfoFor(base); !ok {
		writeError(w, http.StatusBadRequest, "unsupported base currency "+base)
		return
	}

	rates, fetched := s.rates.Rates(r.Context(), base)
	resp := ratesResponse{BaseCurrency: base, Rates: rates}
	if !fetched.IsZero() {
		resp.LastUpdated = fetched.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

type convertRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}
	for _, code := range []string{req.From, req.To} {
		if _, ok := currency.InfoFor(code); !ok {
			writeError(w, http.StatusBadRequest, "unsupported currency "+code)
			return
		}
	}

	conversion := s.rates.ConvertLive(r.Context(), req.Amount, req.From, req.To)
	writeJSON(w, http.StatusOK, conversion)
}
