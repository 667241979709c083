// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitpal/splitpal/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations. The request
// layer receives a Store explicitly; there is no process-wide reachability
// flag and no mock-data fallback — when the store is unavailable, its
// errors surface to the caller.
type Store interface {
	// CreateGroup persists a new group. ID and CreatedAt are populated by
	// the store when unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups with their member counts.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddMember adds a member to a group.
	AddMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by ID.
	GetMember(ctx context.Context, memberID string) (*models.Member, error)

	// ListMembers retrieves all members of a group in creation order.
	ListMembers(ctx context.Context, groupID string) ([]models.Member, error)

	// SetMemberPaymentAddress updates the one mutable member field.
	SetMemberPaymentAddress(ctx context.Context, memberID, address string) error

	// CreateExpense persists an expense together with all of its shares in
	// a single transaction: either every row becomes visible or none does.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses retrieves a group's expenses with their shares, ordered
	// by date ascending.
	ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// CreateSettlement persists a new settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlements retrieves all settlements for a group.
	ListSettlements(ctx context.Context, groupID string) ([]models.Settlement, error)

	// UpdateSettlementStatus records a payment status transition.
	UpdateSettlementStatus(ctx context.Context, settlementID string, status models.SettlementStatus) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
