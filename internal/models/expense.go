package models

// Expense represents a single payment event made by one member on behalf of
// a set of participants. Immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the owning group.
	GroupID string `json:"group_id"`

	// Description is a human-readable label for the expense.
	Description string `json:"description"`

	// Amount is the total expense amount. Invariant: Amount > 0.
	Amount float64 `json:"amount"`

	// PayerID references the member who paid.
	PayerID string `json:"payer_id"`

	// PayerName is populated on reads for display; not stored on the row.
	PayerName string `json:"paid_by_name,omitempty"`

	// Date is the Unix timestamp of the expense. Balance computation
	// processes expenses in ascending date order.
	Date int64 `json:"date"`

	// Shares is the per-participant allocation of Amount. Created atomically
	// with the expense; every intended participant appears exactly once.
	Shares []ExpenseShare `json:"shares,omitempty"`
}

// ExpenseShare is one participant's portion of an expense. Shares are
// amount/participant_count, so their sum approximately equals the expense
// amount (floating rounding tolerated, not corrected).
type ExpenseShare struct {
	// ExpenseID references the owning expense.
	ExpenseID string `json:"expense_id"`

	// MemberID references the participating member.
	MemberID string `json:"member_id"`

	// Amount is this participant's share. Invariant: Amount >= 0.
	Amount float64 `json:"amount"`
}
