package api

import (
	"net/http"

	"github.com/splitpal/splitpal/internal/billscan"
)

type scanBillRequest struct {
	Text string `json:"text"`
}

// handleScanBill parses OCR text into candidate line items. The caller
// confirms them manually before anything becomes an expense.
func (s *Server) handleScanBill(w http.ResponseWriter, r *http.Request) {
	var req scanBillRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	writeJSON(w, http.StatusOK, billscan.Extract(req.Text))
}
