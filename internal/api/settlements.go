package api

import (
	"log/slog"
	"net/http"

	"github.com/splitpal/splitpal/internal/ledger"
	"github.com/splitpal/splitpal/internal/models"
)

type createSettlementRequest struct {
	PaidBy string  `json:"paid_by"`
	PaidTo string  `json:"paid_to"`
	Amount float64 `json:"amount"`
}

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")

	var req createSettlementRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := ledger.ValidateNewSettlement(req.PaidBy, req.PaidTo, req.Amount); err != nil {
		if !writeValidationError(w, err) {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	memberSet, err := s.groupMemberSet(r, groupID)
	if err != nil {
		writeStoreError(w, err, "group")
		return
	}
	if !memberSet[req.PaidBy] {
		writeError(w, http.StatusBadRequest, "invalid paid_by: payer is not a member of this group")
		return
	}
	if !memberSet[req.PaidTo] {
		writeError(w, http.StatusBadRequest, "invalid paid_to: receiver is not a member of this group")
		return
	}

	// Manual settle-ups are effective immediately; only gateway-driven
	// settlements pass through pending.
	settlement := &models.Settlement{
		GroupID:    groupID,
		PayerID:    req.PaidBy,
		ReceiverID: req.PaidTo,
		Amount:     req.Amount,
		Status:     models.SettlementCompleted,
	}
	if err := s.store.CreateSettlement(r.Context(), settlement); err != nil {
		writeStoreError(w, err, "settlement")
		return
	}

	slog.Info("Settlement recorded",
		"group_id", groupID,
		"settlement_id", settlement.ID,
		"amount", settlement.Amount,
	)
	writeJSON(w, http.StatusCreated, settlement)
}
