package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/splitpal/splitpal/internal/models"
	"github.com/splitpal/splitpal/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitpal-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedGroup(t *testing.T, store *SQLiteStore, names ...string) (*models.Group, []models.Member) {
	t.Helper()
	ctx := context.Background()

	group := &models.Group{Name: "Trip"}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	members := make([]models.Member, len(names))
	for i, name := range names {
		m := models.Member{GroupID: group.ID, Name: name}
		if err := store.AddMember(ctx, &m); err != nil {
			t.Fatalf("AddMember(%s) failed: %v", name, err)
		}
		members[i] = m
	}
	return group, members
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and CreatedAt", func(t *testing.T) {
		group := &models.Group{Name: "Roommates"}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetGroup counts members", func(t *testing.T) {
		group, _ := seedGroup(t, store, "Alice", "Bob", "Cara")

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.MemberCount != 3 {
			t.Errorf("MemberCount = %d, want 3", got.MemberCount)
		}
	})

	t.Run("GetGroup missing returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListMembers preserves creation order", func(t *testing.T) {
		_, members := seedGroup(t, store, "Zoe", "Adam", "Mia")

		got, err := store.ListMembers(ctx, members[0].GroupID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 members, got %d", len(got))
		}
		for i, m := range got {
			if m.ID != members[i].ID {
				t.Errorf("member %d = %s, want %s", i, m.Name, members[i].Name)
			}
		}
	})

	t.Run("SetMemberPaymentAddress", func(t *testing.T) {
		_, members := seedGroup(t, store, "Alice")

		if err := store.SetMemberPaymentAddress(ctx, members[0].ID, "alice@upi"); err != nil {
			t.Fatalf("SetMemberPaymentAddress failed: %v", err)
		}
		got, err := store.GetMember(ctx, members[0].ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if got.PaymentAddress != "alice@upi" {
			t.Errorf("PaymentAddress = %q, want %q", got.PaymentAddress, "alice@upi")
		}

		if err := store.SetMemberPaymentAddress(ctx, "nope", "x@upi"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateExpense writes shares atomically", func(t *testing.T) {
		group, members := seedGroup(t, store, "Alice", "Bob")

		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Dinner",
			Amount:      50,
			PayerID:     members[0].ID,
			Shares: []models.ExpenseShare{
				{MemberID: members[0].ID, Amount: 25},
				{MemberID: members[1].ID, Amount: 25},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.ListExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(got))
		}
		if len(got[0].Shares) != 2 {
			t.Errorf("expected 2 shares, got %d", len(got[0].Shares))
		}
		if got[0].PayerName != "Alice" {
			t.Errorf("PayerName = %q, want Alice", got[0].PayerName)
		}
	})

	t.Run("CreateExpense rolls back on bad share reference", func(t *testing.T) {
		group, members := seedGroup(t, store, "Alice")

		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Ghost dinner",
			Amount:      50,
			PayerID:     members[0].ID,
			Shares: []models.ExpenseShare{
				{MemberID: members[0].ID, Amount: 25},
				{MemberID: "no-such-member", Amount: 25},
			},
		}
		if err := store.CreateExpense(ctx, expense); err == nil {
			t.Fatal("expected foreign key failure, got nil")
		}

		// The expense row must not be visible either.
		got, err := store.ListExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected rollback to leave 0 expenses, got %d", len(got))
		}
	})

	t.Run("ListExpenses orders by date ascending", func(t *testing.T) {
		group, members := seedGroup(t, store, "Alice")

		for _, e := range []struct {
			desc string
			date int64
		}{{"second", 200}, {"first", 100}, {"third", 300}} {
			expense := &models.Expense{
				GroupID:     group.ID,
				Description: e.desc,
				Amount:      10,
				PayerID:     members[0].ID,
				Date:        e.date,
				Shares:      []models.ExpenseShare{{MemberID: members[0].ID, Amount: 10}},
			}
			if err := store.CreateExpense(ctx, expense); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
		}

		got, err := store.ListExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		want := []string{"first", "second", "third"}
		for i, e := range got {
			if e.Description != want[i] {
				t.Errorf("expense %d = %q, want %q", i, e.Description, want[i])
			}
		}
	})
}

func TestSQLiteStore_Settlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group, members := seedGroup(t, store, "Alice", "Bob")

	t.Run("CreateSettlement defaults to completed", func(t *testing.T) {
		settlement := &models.Settlement{
			GroupID:    group.ID,
			PayerID:    members[1].ID,
			ReceiverID: members[0].ID,
			Amount:     30,
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.Status != models.SettlementCompleted {
			t.Errorf("Status = %q, want completed", got.Status)
		}
	})

	t.Run("UpdateSettlementStatus", func(t *testing.T) {
		settlement := &models.Settlement{
			GroupID:    group.ID,
			PayerID:    members[1].ID,
			ReceiverID: members[0].ID,
			Amount:     10,
			Status:     models.SettlementPending,
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		if err := store.UpdateSettlementStatus(ctx, settlement.ID, models.SettlementFailed); err != nil {
			t.Fatalf("UpdateSettlementStatus failed: %v", err)
		}
		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.Status != models.SettlementFailed {
			t.Errorf("Status = %q, want failed", got.Status)
		}

		if err := store.UpdateSettlementStatus(ctx, "nope", models.SettlementCompleted); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListSettlements", func(t *testing.T) {
		got, err := store.ListSettlements(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 settlements, got %d", len(got))
		}
	})
}
