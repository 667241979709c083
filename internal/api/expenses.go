package api

import (
	"log/slog"
	"net/http"

	"github.com/splitpal/splitpal/internal/ledger"
	"github.com/splitpal/splitpal/internal/models"
)

type addExpenseRequest struct {
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	PaidBy       string   `json:"paid_by"`
	Participants []string `json:"participants"`
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")

	var req addExpenseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := ledger.ValidateNewExpense(req.Description, req.Amount, req.PaidBy, req.Participants); err != nil {
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
	for _, p := range req.Participants {
		if !memberSet[p] {
			writeError(w, http.StatusBadRequest, "invalid participants: "+p+" is not a member of this group")
			return
		}
	}

	// Equal split: every participant carries amount/count. The share sum may
	// differ from the amount by floating rounding; that is tolerated, not
	// corrected.
	share := req.Amount / float64(len(req.Participants))
	expense := &models.Expense{
		GroupID:     groupID,
		Description: req.Description,
		Amount:      req.Amount,
		PayerID:     req.PaidBy,
	}
	for _, p := range req.Participants {
		expense.Shares = append(expense.Shares, models.ExpenseShare{MemberID: p, Amount: share})
	}

	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		writeStoreError(w, err, "expense")
		return
	}

	slog.Info("Expense added",
		"group_id", groupID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"participants", len(req.Participants),
	)
	writeJSON(w, http.StatusCreated, expense)
}

// groupMemberSet returns the IDs of a group's members, failing with the
// group lookup error when the group does not exist.
func (s *Server) groupMemberSet(r *http.Request, groupID string) (map[string]bool, error) {
	if _, err := s.store.GetGroup(r.Context(), groupID); err != nil {
		return nil, err
	}
	members, err := s.store.ListMembers(r.Context(), groupID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m.ID] = true
	}
	return set, nil
}
