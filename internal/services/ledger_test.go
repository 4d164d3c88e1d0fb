package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/ports"
	"finboard/internal/store/memory"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []*amqp.ChangeMessage
	err  error
}

func (p *recordingPublisher) PublishChange(_ context.Context, msg *amqp.ChangeMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, m := range p.msgs {
		out = append(out, m.Entity+":"+m.Op+":"+m.ID)
	}
	return out
}

func newTestLedger(t *testing.T, pub amqp.Publisher) (*Ledger, ports.Repositories) {
	t.Helper()
	repos := memory.NewSeeded().Repositories()
	l := NewLedger(repos, pub, "user-1")
	l.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("X", 3600)) }
	n := 0
	l.newID = func(prefix string) string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
	return l, repos
}

func TestLedger_AddTransaction(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	l, repos := newTestLedger(t, pub)

	tx, err := l.AddTransaction(ctx, NewTransaction{
		CategoryID:    " cat_groceries ",
		Amount:        12.5,
		Date:          "03/01/2026",
		Description:   "  Milk ",
		PaymentMethod: core.Debit,
	})
	require.NoError(t, err)

	assert.Equal(t, "tx_1", tx.ID)
	assert.Equal(t, "user-1", tx.UserID)
	assert.Equal(t, "cat_groceries", tx.CategoryID)
	assert.Equal(t, "2026-03-01", tx.Date)
	assert.Equal(t, "Milk", tx.Description)
	assert.Equal(t, "2026-03-01T08:30:00Z", tx.CreatedAt)
	assert.Equal(t, "user-1", tx.CreatedBy)

	txs, err := repos.Transactions.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tx_1", txs[0].ID, "new transactions are prepended")
	assert.Equal(t, []string{"transaction:created:tx_1"}, pub.ops())
}

func TestLedger_Validation(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	l, repos := newTestLedger(t, pub)
	before, _ := repos.Transactions.Snapshot(ctx)

	tests := []struct {
		name string
		in   NewTransaction
		want error
	}{
		{"zero amount", NewTransaction{CategoryID: "cat_gas", Date: "2026-03-01", PaymentMethod: core.Cash}, core.ErrInvalidAmount},
		{"bad date", NewTransaction{CategoryID: "cat_gas", Amount: 1, Date: "2026-02-30", PaymentMethod: core.Cash}, core.ErrInvalidDate},
		{"no category", NewTransaction{Amount: 1, Date: "2026-03-01", PaymentMethod: core.Cash}, core.ErrEmptyCategory},
		{"no payment method", NewTransaction{CategoryID: "cat_gas", Amount: 1, Date: "2026-03-01"}, core.ErrInvalidPaymentMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.AddTransaction(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, core.IsValidationError(err))
		})
	}

	_, err := l.AddCategory(ctx, NewCategory{Name: " ", TypeID: core.ExpenseTypeID})
	assert.ErrorIs(t, err, core.ErrEmptyName)
	_, err = l.AddBill(ctx, NewBill{Name: "Gym", CategoryID: "cat_gas", Amount: 30, Frequency: "daily", StartDate: "2026-03-01", NextDueDate: "2026-03-01"})
	assert.ErrorIs(t, err, core.ErrInvalidFrequency)

	after, _ := repos.Transactions.Snapshot(ctx)
	assert.Len(t, after, len(before))
	assert.Empty(t, pub.ops())
}

func TestLedger_CategoriesAndBills(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	l, repos := newTestLedger(t, pub)

	cat, err := l.AddCategory(ctx, NewCategory{Name: "Gym", Alias: "fitness", TypeID: core.ExpenseTypeID})
	require.NoError(t, err)
	assert.Equal(t, "cat_1", cat.ID)

	bill, err := l.AddBill(ctx, NewBill{
		Name: "Membership", CategoryID: cat.ID, Amount: 30, Frequency: core.Monthly,
		StartDate: "2026-03-05", NextDueDate: "03-05-2026",
	})
	require.NoError(t, err)
	assert.Equal(t, "rb_2", bill.ID)
	assert.Equal(t, "2026-03-05", bill.NextDueDate)
	assert.False(t, bill.Active)

	bill, err = l.SetBillActive(ctx, bill.ID, true)
	require.NoError(t, err)
	assert.True(t, bill.Active)
	stored, err := repos.Bills.Get(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)

	require.NoError(t, l.DeleteBill(ctx, bill.ID))
	require.NoError(t, l.DeleteCategory(ctx, cat.ID))
	require.NoError(t, l.DeleteTransaction(ctx, "tx_1001"))

	assert.Equal(t, []string{
		"category:created:cat_1",
		"bill:created:rb_2",
		"bill:updated:rb_2",
		"bill:deleted:rb_2",
		"category:deleted:cat_1",
		"transaction:deleted:tx_1001",
	}, pub.ops())
}

func TestLedger_DeleteMissing(t *testing.T) {
	l, _ := newTestLedger(t, nil)
	err := l.DeleteTransaction(context.Background(), "tx_missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = l.SetBillActive(context.Background(), "rb_missing", true)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestLedger_PublishFailureDoesNotFail(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	l, repos := newTestLedger(t, pub)

	tx, err := l.AddTransaction(context.Background(), NewTransaction{
		CategoryID: "cat_gas", Amount: 10, Date: "2026-03-01", PaymentMethod: core.Credit,
	})
	require.NoError(t, err)

	txs, _ := repos.Transactions.Snapshot(context.Background())
	assert.Equal(t, tx.ID, txs[0].ID)
}

func TestNewLedgerDefaultIDs(t *testing.T) {
	l := NewLedger(memory.New().Repositories(), nil, "u")
	id := l.newID(TransactionIDPrefix)
	assert.True(t, strings.HasPrefix(id, "tx_"))
	assert.Len(t, id, len("tx_")+36)
}
