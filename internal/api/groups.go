package api

import (
	"log/slog"
	"net/http"

	"github.com/splitpal/splitpal/internal/models"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "group name is required")
		return
	}

	group := &models.Group{Name: req.Name}
	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		writeStoreError(w, err, "group")
		return
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name)
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.ListGroups(r.Context())
	if err != nil {
		writeStoreError(w, err, "groups")
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

// groupDetail is the group page payload: the group plus its members and
// expense history.
type groupDetail struct {
	models.Group
	Members  []models.Member  `json:"members"`
	Expenses []models.Expense `json:"expenses"`
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		writeStoreError(w, err, "group")
		return
	}
	members, err := s.store.ListMembers(r.Context(), groupID)
	if err != nil {
		writeStoreError(w, err, "members")
		return
	}
	expenses, err := s.store.ListExpenses(r.Context(), groupID)
	if err != nil {
		writeStoreError(w, err, "expenses")
		return
	}

	detail := groupDetail{Group: *group, Members: members, Expenses: expenses}
	if detail.Members == nil {
		detail.Members = []models.Member{}
	}
	if detail.Expenses == nil {
		detail.Expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, detail)
}

type addMemberRequest struct {
	Name           string `json:"name"`
	PaymentAddress string `json:"payment_address"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")

	var req addMemberRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "member name is required")
		return
	}

	// The owning group must exist before a member can join it.
	if _, err := s.store.GetGroup(r.Context(), groupID); err != nil {
		writeStoreError(w, err, "group")
		return
	}

	member := &models.Member{
		GroupID:        groupID,
		Name:           req.Name,
		PaymentAddress: req.PaymentAddress,
	}
	if err := s.store.AddMember(r.Context(), member); err != nil {
		writeStoreError(w, err, "member")
		return
	}

	slog.Info("Member added", "group_id", groupID, "member_id", member.ID, "name", member.Name)
	writeJSON(w, http.StatusCreated, member)
}

type updateMemberRequest struct {
	PaymentAddress string `json:"payment_address"`
}

// handleUpdateMember updates the one mutable member field, the payment
// address.
func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")

	var req updateMemberRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.SetMemberPaymentAddress(r.Context(), memberID, req.PaymentAddress); err != nil {
		writeStoreError(w, err, "member")
		return
	}

	member, err := s.store.GetMember(r.Context(), memberID)
	if err != nil {
		writeStoreError(w, err, "member")
		return
	}
	writeJSON(w, http.StatusOK, member)
}
