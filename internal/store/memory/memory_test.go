package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/ports"
)

func TestSeededStore(t *testing.T) {
	ctx := context.Background()
	repos := NewSeeded().Repositories()

	cats, err := repos.Categories.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 6)

	types, err := repos.CategoryTypes.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 2)

	txs, err := repos.Transactions.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 4)

	bills, err := repos.Bills.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}

func TestAddPrependsAndNotifies(t *testing.T) {
	ctx := context.Background()
	repos := NewSeeded().Repositories()

	ch, cancel := repos.Transactions.Subscribe()
	defer cancel()

	tx := core.Transaction{ID: "tx_new", CategoryID: "cat_gas", Amount: 12, Date: "2026-02-02", PaymentMethod: core.Debit}
	require.NoError(t, repos.Transactions.Add(ctx, tx))

	select {
	case <-ch:
	default:
		t.Fatal("expected change notification")
	}

	txs, err := repos.Transactions.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 5)
	assert.Equal(t, "tx_new", txs[0].ID)

	assert.Error(t, repos.Transactions.Add(ctx, tx), "duplicate ids are rejected")
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	repos := NewSeeded().Repositories()

	cats, err := repos.Categories.Snapshot(ctx)
	require.NoError(t, err)
	cats[0].Name = "mutated"

	again, err := repos.Categories.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Name)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repos := NewSeeded().Repositories()

	before, _ := repos.Transactions.Snapshot(ctx)
	require.NoError(t, repos.Transactions.Delete(ctx, "tx_1002"))
	after, _ := repos.Transactions.Snapshot(ctx)

	assert.Len(t, after, len(before)-1)
	assert.Equal(t, "tx_1002", before[1].ID, "earlier snapshot unchanged")
	for _, tx := range after {
		assert.NotEqual(t, "tx_1002", tx.ID)
	}

	assert.ErrorIs(t, repos.Transactions.Delete(ctx, "tx_1002"), ports.ErrNotFound)
}

func TestBillGetAndUpdate(t *testing.T) {
	ctx := context.Background()
	repos := NewSeeded().Repositories()

	bill, err := repos.Bills.Get(ctx, "rb_2002")
	require.NoError(t, err)
	assert.Equal(t, "Rent", bill.Name)

	bill.NextDueDate = "2026-03-01"
	require.NoError(t, repos.Bills.Update(ctx, bill))

	got, err := repos.Bills.Get(ctx, "rb_2002")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", got.NextDueDate)

	_, err = repos.Bills.Get(ctx, "rb_missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repos.Bills.Update(ctx, core.RecurringBill{ID: "rb_missing"}), ports.ErrNotFound)
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.AddCategoryType(ctx, core.CategoryType{ID: core.IncomeTypeID, Name: "Income"}))

	types, err := s.Repositories().CategoryTypes.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)

	txs, err := s.Repositories().Transactions.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
