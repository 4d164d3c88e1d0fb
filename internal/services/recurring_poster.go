package services

import (
	"context"
	"fmt"
	"log/slog"

	"finboard/internal/core"
	"finboard/internal/datekey"
	"finboard/internal/ports"
	"finboard/internal/recurrence"
	"finboard/internal/report"
)

// RecurringPoster turns due recurring bills into posted transactions.
type RecurringPoster struct {
	bills  ports.BillRepository
	ledger *Ledger
}

// NewRecurringPoster creates a poster that records transactions through
// ledger so they get ids, audit fields and change messages.
func NewRecurringPoster(bills ports.BillRepository, ledger *Ledger) *RecurringPoster {
	return &RecurringPoster{bills: bills, ledger: ledger}
}

// PostResult summarizes one PostDue run.
type PostResult struct {
	Checked int                `json:"checked"`
	Posted  []core.Transaction `json:"posted"`
	// Advanced maps bill id to its new next due date.
	Advanced map[string]string `json:"advanced"`
}

// PostDue posts one transaction per occurrence due on or before today for
// every active bill, then moves the bill's next due date past today.
// Occurrences that already have a posted recurring instance for the same
// category and day are not posted again, so a run that failed to advance a
// bill is safe to repeat. A failure on one bill is logged and the run
// continues with the next.
func (p *RecurringPoster) PostDue(ctx context.Context, today datekey.Day) (PostResult, error) {
	result := PostResult{Advanced: map[string]string{}}
	if p.bills == nil || p.ledger == nil {
		return result, fmt.Errorf("poster not properly initialized")
	}
	if !today.Valid() {
		return result, fmt.Errorf("post due bills: %w", core.ErrInvalidDate)
	}

	bills, err := p.bills.Snapshot(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load recurring bills: %w", err)
	}
	txs, err := p.ledger.repos.Transactions.Snapshot(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load transactions: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring bills",
		"total", len(bills),
		"processing_date", today.String())

	type dueBill struct {
		bill core.RecurringBill
		next datekey.Day
	}
	var due []dueBill
	var allOccs []recurrence.Occurrence
	for _, bill := range bills {
		if !bill.Active {
			continue
		}
		result.Checked++

		occs, next := recurrence.Advance(bill, today)
		if len(occs) == 0 {
			continue
		}
		due = append(due, dueBill{bill: bill, next: next})
		allOccs = append(allOccs, occs...)
	}

	// Dedup across every bill at once so each posted instance is matched
	// to a single occurrence.
	pending := make(map[string][]recurrence.Occurrence, len(due))
	for _, o := range report.Dedup(allOccs, txs) {
		pending[o.BillID] = append(pending[o.BillID], o)
	}

	for _, d := range due {
		bill, next := d.bill, d.next
		occs := pending[bill.ID]

		posted, err := p.post(ctx, bill, occs)
		result.Posted = append(result.Posted, posted...)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to post recurring bill",
				"bill_id", bill.ID,
				"posted", len(posted),
				"error", err)
			if len(posted) == 0 {
				continue
			}
			// Resume after the last posted occurrence next run.
			next = occs[len(posted)-1].Date
			if stepper, serr := recurrence.GetStepper(bill.Frequency); serr == nil {
				next = stepper.Step(next)
			}
		}

		bill.NextDueDate = next.String()
		if err := p.bills.Update(ctx, bill); err != nil {
			slog.ErrorContext(ctx, "Failed to advance next due date",
				"bill_id", bill.ID,
				"error", err)
			continue
		}
		result.Advanced[bill.ID] = bill.NextDueDate

		slog.InfoContext(ctx, "Posted recurring bill",
			"bill_id", bill.ID,
			"name", bill.Name,
			"occurrences", len(posted),
			"next_due_date", bill.NextDueDate)
	}

	slog.InfoContext(ctx, "Recurring bill processing complete",
		"posted", len(result.Posted),
		"checked", result.Checked)

	return result, nil
}

func (p *RecurringPoster) post(ctx context.Context, bill core.RecurringBill, occs []recurrence.Occurrence) ([]core.Transaction, error) {
	var posted []core.Transaction
	for _, o := range occs {
		tx, err := p.ledger.AddTransaction(ctx, NewTransaction{
			CategoryID:          o.CategoryID,
			Amount:              o.Amount,
			Date:                o.Date.String(),
			Description:         bill.Name,
			PaymentMethod:       core.Debit,
			IsRecurringInstance: true,
		})
		if err != nil {
			return posted, fmt.Errorf("post occurrence %s: %w", o.Date, err)
		}
		posted = append(posted, tx)
	}
	return posted, nil
}
