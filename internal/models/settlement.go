package models

// SettlementStatus tracks the payment state of a settlement. Manual
// settle-ups are recorded as completed; settlements going through the
// payments collaborator start pending and are flipped on verification.
type SettlementStatus string

const (
	SettlementPending   SettlementStatus = "pending"
	SettlementCompleted SettlementStatus = "completed"
	SettlementFailed    SettlementStatus = "failed"
)

// Settlement records that a payer transferred an amount directly to a
// receiver to offset owed balances. Immutable except for status transitions.
// Invariants: PayerID != ReceiverID, Amount > 0.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// PayerID is the member who paid (debtor settling up).
	PayerID string `json:"payer_id"`

	// ReceiverID is the member who received payment (creditor being paid).
	ReceiverID string `json:"receiver_id"`

	// Amount is the settlement amount.
	Amount float64 `json:"amount"`

	// Status is set by the payments collaborator.
	Status SettlementStatus `json:"status"`

	// Date is the Unix timestamp when the settlement was recorded.
	Date int64 `json:"date"`
}
