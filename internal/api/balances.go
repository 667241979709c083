package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitpal/splitpal/internal/ledger"
	"github.com/splitpal/splitpal/internal/models"
)

// balancesResponse mirrors the balances payload the group page renders:
// the member list plus the derived per-member balance mapping.
type balancesResponse struct {
	Members        []models.Member                  `json:"members"`
	MemberBalances map[string]*ledger.MemberBalance `json:"memberBalances"`
}

// snapshot gathers everything the ledger needs for one group. All I/O
// happens here, before the pure computation runs.
func (s *Server) snapshot(r *http.Request, groupID string) ([]models.Member, []models.Expense, []models.Settlement, error) {
	if _, err := s.store.GetGroup(r.Context(), groupID); err != nil {
		return nil, nil, nil, err
	}
	members, err := s.store.ListMembers(r.Context(), groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := s.store.ListExpenses(r.Context(), groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	settlements, err := s.store.ListSettlements(r.Context(), groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	return members, expenses, settlements, nil
}

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")

	members, expenses, settlements, err := s.snapshot(r, groupID)
	if err != nil {
		writeStoreError(w, err, "group")
		return
	}

	balances, err := ledger.ComputeBalances(members, expenses, settlements)
	if err != nil {
		writeComputeError(w, groupID, err)
		return
	}

	if members == nil {
		members = []models.Member{}
	}
	writeJSON(w, http.StatusOK, balancesResponse{Members: members, MemberBalances: balances})
}

type simplifiedResponse struct {
	Transfers []ledger.Transfer `json:"transfers"`
}

func (s *Server) handleGetSimplifiedBalances(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")

	members, expenses, settlements, err := s.snapshot(r, groupID)
	if err != nil {
		writeStoreError(w, err, "group")
		return
	}

	balances, err := ledger.ComputeBalances(members, expenses, settlements)
	if err != nil {
		writeComputeError(w, groupID, err)
		return
	}

	order := make([]string, len(members))
	for i, m := range members {
		order[i] = m.ID
	}
	transfers := ledger.Simplify(ledger.NetBalances(order, balances))

	writeJSON(w, http.StatusOK, simplifiedResponse{Transfers: transfers})
}

// writeComputeError hides data-integrity details behind a generic message
// while logging the specific cause for operators.
func writeComputeError(w http.ResponseWriter, groupID string, err error) {
	var refErr *ledger.InvalidReferenceError
	if errors.As(err, &refErr) {
		slog.Error("Balance computation hit invalid reference",
			"group_id", groupID,
			"record", refErr.Record,
			"member_id", refErr.MemberID,
		)
	} else {
		slog.Error("Balance computation failed", "group_id", groupID, "error", err)
	}
	writeError(w, http.StatusInternalServerError, "could not compute balances")
}
