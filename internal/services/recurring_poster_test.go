package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/datekey"
	"finboard/internal/ports"
)

func TestRecurringPoster_PostDue(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	l, repos := newTestLedger(t, pub)
	poster := NewRecurringPoster(repos.Bills, l)
	today := datekey.New(2026, 3, 15)

	before, err := repos.Transactions.Snapshot(ctx)
	require.NoError(t, err)

	res, err := poster.PostDue(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	require.Len(t, res.Posted, 4)
	assert.Equal(t, map[string]string{"rb_2001": "2026-04-10", "rb_2002": "2026-04-01"}, res.Advanced)

	for _, tx := range res.Posted {
		assert.True(t, tx.IsRecurringInstance)
		assert.Equal(t, core.Debit, tx.PaymentMethod)
		assert.False(t, datekey.Parse(tx.Date).After(today))
	}
	assert.Equal(t, "2026-02-10", res.Posted[0].Date)
	assert.Equal(t, "2026-03-10", res.Posted[1].Date)
	assert.Equal(t, "Electric", res.Posted[0].Description)

	after, err := repos.Transactions.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+4)

	bill, err := repos.Bills.Get(ctx, "rb_2002")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", bill.NextDueDate)

	again, err := poster.PostDue(ctx, today)
	require.NoError(t, err)
	assert.Empty(t, again.Posted)
	assert.Empty(t, again.Advanced)
}

func TestRecurringPoster_SkipsInactive(t *testing.T) {
	ctx := context.Background()
	l, repos := newTestLedger(t, nil)
	_, err := l.SetBillActive(ctx, "rb_2001", false)
	require.NoError(t, err)

	res, err := NewRecurringPoster(repos.Bills, l).PostDue(ctx, datekey.New(2026, 2, 20))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Checked)
	require.Len(t, res.Posted, 1)
	assert.Equal(t, "cat_rent", res.Posted[0].CategoryID)

	bill, err := repos.Bills.Get(ctx, "rb_2001")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", bill.NextDueDate)
}

func TestRecurringPoster_InvalidInput(t *testing.T) {
	var p RecurringPoster
	_, err := p.PostDue(context.Background(), datekey.New(2026, 1, 1))
	assert.Error(t, err)

	l, repos := newTestLedger(t, nil)
	_, err = NewRecurringPoster(repos.Bills, l).PostDue(context.Background(), datekey.Day{})
	assert.ErrorIs(t, err, core.ErrInvalidDate)
}

type stuckBills struct {
	ports.BillRepository
}

func (stuckBills) Update(context.Context, core.RecurringBill) error {
	return errors.New("disk full")
}

func TestRecurringPoster_RetryAfterFailedAdvance(t *testing.T) {
	ctx := context.Background()
	l, repos := newTestLedger(t, nil)
	poster := NewRecurringPoster(stuckBills{repos.Bills}, l)
	today := datekey.New(2026, 2, 5)

	first, err := poster.PostDue(ctx, today)
	require.NoError(t, err)
	require.Len(t, first.Posted, 1)
	assert.Equal(t, "cat_rent", first.Posted[0].CategoryID)
	assert.Empty(t, first.Advanced)

	second, err := poster.PostDue(ctx, today)
	require.NoError(t, err)
	assert.Empty(t, second.Posted)

	txs, err := repos.Transactions.Snapshot(ctx)
	require.NoError(t, err)
	n := 0
	for _, tx := range txs {
		if tx.IsRecurringInstance && tx.CategoryID == "cat_rent" && tx.Date == "2026-02-01" {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestRecurringPoster_SkipsManuallyPostedInstance(t *testing.T) {
	ctx := context.Background()
	l, repos := newTestLedger(t, nil)
	_, err := l.AddTransaction(ctx, NewTransaction{
		CategoryID:          "cat_rent",
		Amount:              2100,
		Date:                "2026-02-01",
		PaymentMethod:       core.Cash,
		IsRecurringInstance: true,
	})
	require.NoError(t, err)

	res, err := NewRecurringPoster(repos.Bills, l).PostDue(ctx, datekey.New(2026, 2, 5))
	require.NoError(t, err)
	assert.Empty(t, res.Posted)
	assert.Equal(t, map[string]string{"rb_2002": "2026-03-01"}, res.Advanced)
}
