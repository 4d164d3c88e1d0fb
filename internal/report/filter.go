package report

import (
	"sort"

	"finboard/internal/core"
	"finboard/internal/datekey"
)

// FilterRange keeps the transactions whose day falls inside rng, bounds
// included. Order is preserved; unparseable days are dropped.
func FilterRange(txs []core.Transaction, rng datekey.Range) []core.Transaction {
	if !rng.Valid() {
		return nil
	}
	var out []core.Transaction
	for _, t := range txs {
		if rng.Contains(datekey.Parse(t.Date)) {
			out = append(out, t)
		}
	}
	return out
}

// SortTransactions returns a copy of txs ordered for display: newest day
// first, then most recently created first. Unparseable days sort last.
func SortTransactions(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := datekey.KeyOf(out[i].Date), datekey.KeyOf(out[j].Date)
		if ki != kj {
			return ki > kj
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// UpcomingBillsTotal sums the amounts of active bills whose next due day lies
// between today and today+days, both ends included.
func UpcomingBillsTotal(bills []core.RecurringBill, today datekey.Day, days int) float64 {
	if !today.Valid() || days < 0 {
		return 0
	}
	window := datekey.NewRange(today, today.AddDays(days))
	var sum float64
	for _, b := range bills {
		if !b.Active {
			continue
		}
		if window.Contains(datekey.Parse(b.NextDueDate)) {
			sum += core.SafeAmount(b.Amount)
		}
	}
	return sum
}

// UpcomingBills lists the active bills counted by UpcomingBillsTotal, soonest
// first.
func UpcomingBills(bills []core.RecurringBill, today datekey.Day, days int) []core.RecurringBill {
	if !today.Valid() || days < 0 {
		return nil
	}
	window := datekey.NewRange(today, today.AddDays(days))
	var out []core.RecurringBill
	for _, b := range bills {
		if b.Active && window.Contains(datekey.Parse(b.NextDueDate)) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return datekey.KeyOf(out[i].NextDueDate) < datekey.KeyOf(out[j].NextDueDate)
	})
	return out
}
