package models

// Group represents a named collection of members sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Goa Trip", "Flat 4B").
	Name string `json:"name"`

	// MemberCount is populated on list queries; not stored.
	MemberCount int `json:"members_count"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// Member represents a participant within exactly one group.
// Immutable once created except for the payment address; never deleted.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// GroupID is the owning group.
	GroupID string `json:"group_id"`

	// Name is the display name of the member.
	Name string `json:"name"`

	// PaymentAddress is an optional payment handle (e.g., a UPI VPA like
	// "alice@upi"). Used only by the payments collaborator, never by the
	// balance computation.
	PaymentAddress string `json:"payment_address,omitempty"`

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64 `json:"created_at"`
}
