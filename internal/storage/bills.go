package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finboard/internal/core"
	"finboard/internal/ports"
)

const billColumns = `id, user_id, category_id, name, amount, frequency, start_date, next_due_date,
	active, created_at, created_by`

type billRepo struct{ r *SQLiteRepository }

type scanner interface {
	Scan(dest ...any) error
}

func scanBill(s scanner) (core.RecurringBill, error) {
	var (
		b      core.RecurringBill
		amount string
		freq   string
		active int
	)
	err := s.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Name, &amount, &freq, &b.StartDate,
		&b.NextDueDate, &active, &b.CreatedAt, &b.CreatedBy)
	if err != nil {
		return b, err
	}
	b.Amount = core.ParseAmount(amount)
	b.Frequency = core.Frequency(freq)
	b.Active = active != 0
	return b, nil
}

func (b billRepo) Subscribe() (<-chan struct{}, func()) {
	return b.r.billsChanged.Subscribe()
}

func (b billRepo) Snapshot(ctx context.Context) ([]core.RecurringBill, error) {
	rows, err := b.r.db.QueryContext(ctx, `SELECT `+billColumns+` FROM recurring_bills ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query recurring bills: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringBill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring bill: %w", err)
		}
		out = append(out, bill)
	}
	return out, rows.Err()
}

func (b billRepo) Get(ctx context.Context, id string) (core.RecurringBill, error) {
	row := b.r.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM recurring_bills WHERE id = ?`, id)
	bill, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.RecurringBill{}, fmt.Errorf("recurring bill %s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return core.RecurringBill{}, fmt.Errorf("get recurring bill %s: %w", id, err)
	}
	return bill, nil
}

func (b billRepo) Add(ctx context.Context, bill core.RecurringBill) error {
	err := b.r.exec(ctx, &b.r.billsChanged, false,
		`INSERT INTO recurring_bills (`+billColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.UserID, bill.CategoryID, bill.Name, core.AmountString(bill.Amount),
		string(bill.Frequency), bill.StartDate, bill.NextDueDate, boolToInt(bill.Active),
		bill.CreatedAt, bill.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert recurring bill: %w", err)
	}
	logMutation(ctx, "Recurring bill inserted", "recurring_bills", bill.ID)
	return nil
}

// Update replaces every mutable column. Audit fields are never rewritten.
func (b billRepo) Update(ctx context.Context, bill core.RecurringBill) error {
	err := b.r.exec(ctx, &b.r.billsChanged, true, `
		UPDATE recurring_bills
		SET user_id = ?, category_id = ?, name = ?, amount = ?, frequency = ?,
		    start_date = ?, next_due_date = ?, active = ?
		WHERE id = ?`,
		bill.UserID, bill.CategoryID, bill.Name, core.AmountString(bill.Amount), string(bill.Frequency),
		bill.StartDate, bill.NextDueDate, boolToInt(bill.Active), bill.ID)
	if err != nil {
		return fmt.Errorf("update recurring bill %s: %w", bill.ID, err)
	}
	logMutation(ctx, "Recurring bill updated", "recurring_bills", bill.ID)
	return nil
}

func (b billRepo) Delete(ctx context.Context, id string) error {
	if err := b.r.exec(ctx, &b.r.billsChanged, true, `DELETE FROM recurring_bills WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete recurring bill %s: %w", id, err)
	}
	logMutation(ctx, "Recurring bill deleted", "recurring_bills", id)
	return nil
}
