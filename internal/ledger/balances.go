// Package ledger computes per-member balances from a snapshot of group
// expenses and settlements, and reduces pairwise debts to a short list of
// suggested transfers.
//
// The computation is pure and deterministic: it runs over an immutable
// snapshot, holds no state between calls, and running it twice on the same
// snapshot yields identical results. All I/O happens before the snapshot is
// handed in.
package ledger

import (
	"sort"

	"github.com/splitpal/splitpal/internal/models"
)

// tolerance below which a residual amount is treated as fully settled.
const tolerance = 0.01

// OwedEntry is one outstanding debt a member has toward a creditor,
// originating from a single expense share.
type OwedEntry struct {
	To          string  `json:"to"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        int64   `json:"date"`
}

// MemberBalance is the derived per-member aggregate. It is recomputed fully
// on every balance request and never cached.
type MemberBalance struct {
	// Paid is the sum of this member's own shares on expenses they paid.
	// The expense total is never added directly; only same-person shares
	// count toward Paid.
	Paid float64 `json:"paid"`

	// GetsBack is the sum of shares other members owe this member, net of
	// settlements received.
	GetsBack float64 `json:"getsBack"`

	// Owes lists outstanding debts toward creditors, net of settlements
	// already made, ordered by originating expense date.
	Owes []OwedEntry `json:"owes"`
}

// ComputeBalances turns a group snapshot into a per-member balance mapping.
//
// Expenses are processed in ascending date order; this affects only the
// ordering of Owes entries, not the totals. Settlements are then applied:
// each one reduces the first matching Owes entry of the payer toward the
// receiver and unconditionally reduces the receiver's GetsBack. An entry
// whose residual drops below 0.01 is removed — a settlement larger than the
// matched entry clears it entirely, and the excess is not credited elsewhere.
// A settlement with no matching Owes entry still reduces the receiver's
// GetsBack (known asymmetry, kept deliberately; it can drive GetsBack
// negative).
//
// Settlements with a failed payment status are skipped. Any reference to a
// member outside the supplied set fails the whole computation with an
// InvalidReferenceError.
func ComputeBalances(members []models.Member, expenses []models.Expense, settlements []models.Settlement) (map[string]*MemberBalance, error) {
	balances := make(map[string]*MemberBalance, len(members))
	for _, m := range members {
		balances[m.ID] = &MemberBalance{Owes: []OwedEntry{}}
	}

	ordered := make([]models.Expense, len(expenses))
	copy(ordered, expenses)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	for _, e := range ordered {
		payer, ok := balances[e.PayerID]
		if !ok {
			return nil, &InvalidReferenceError{Record: "expense payer", MemberID: e.PayerID}
		}
		for _, share := range e.Shares {
			participant, ok := balances[share.MemberID]
			if !ok {
				return nil, &InvalidReferenceError{Record: "expense share", MemberID: share.MemberID}
			}
			if share.MemberID == e.PayerID {
				payer.Paid += share.Amount
				continue
			}
			participant.Owes = append(participant.Owes, OwedEntry{
				To:          e.PayerID,
				Amount:      share.Amount,
				Description: e.Description,
				Date:        e.Date,
			})
			payer.GetsBack += share.Amount
		}
	}

	for _, s := range settlements {
		if s.Status == models.SettlementFailed {
			continue
		}
		payer, ok := balances[s.PayerID]
		if !ok {
			return nil, &InvalidReferenceError{Record: "settlement payer", MemberID: s.PayerID}
		}
		receiver, ok := balances[s.ReceiverID]
		if !ok {
			return nil, &InvalidReferenceError{Record: "settlement receiver", MemberID: s.ReceiverID}
		}

		for i := range payer.Owes {
			if payer.Owes[i].To != s.ReceiverID {
				continue
			}
			payer.Owes[i].Amount -= s.Amount
			if payer.Owes[i].Amount < tolerance {
				payer.Owes = append(payer.Owes[:i], payer.Owes[i+1:]...)
			}
			break
		}
		receiver.GetsBack -= s.Amount
	}

	return balances, nil
}

// ValidateNewExpense enforces the preconditions for expense creation before
// anything reaches the store: non-empty description, positive amount, a
// payer and a non-empty participant set.
func ValidateNewExpense(description string, amount float64, payerID string, participantIDs []string) error {
	if description == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}
	if payerID == "" {
		return &ValidationError{Field: "paid_by", Reason: "payer is required"}
	}
	if len(participantIDs) == 0 {
		return &ValidationError{Field: "participants", Reason: "at least one participant is required"}
	}
	return nil
}

// ValidateNewSettlement enforces the preconditions for settlement creation:
// distinct payer and receiver, positive amount.
func ValidateNewSettlement(payerID, receiverID string, amount float64) error {
	if payerID == "" {
		return &ValidationError{Field: "paid_by", Reason: "payer is required"}
	}
	if receiverID == "" {
		return &ValidationError{Field: "paid_to", Reason: "receiver is required"}
	}
	if payerID == receiverID {
		return &ValidationError{Field: "paid_to", Reason: "cannot settle with yourself"}
	}
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}
	return nil
}
