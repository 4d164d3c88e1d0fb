package storage

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

type transactionRepo struct{ r *SQLiteRepository }

func (t transactionRepo) Subscribe() (<-chan struct{}, func()) {
	return t.r.txsChanged.Subscribe()
}

func (t transactionRepo) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	rows, err := t.r.db.QueryContext(ctx, `
		SELECT id, user_id, category_id, amount, day, description, payment_method,
		       is_recurring_instance, created_at, created_by
		FROM transactions ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			tx        core.Transaction
			amount    string
			method    string
			recurring int
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.CategoryID, &amount, &tx.Date, &tx.Description,
			&method, &recurring, &tx.CreatedAt, &tx.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Amount = core.ParseAmount(amount)
		tx.PaymentMethod = core.PaymentMethod(method)
		tx.IsRecurringInstance = recurring != 0
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (t transactionRepo) Add(ctx context.Context, tx core.Transaction) error {
	err := t.r.exec(ctx, &t.r.txsChanged, false, `
		INSERT INTO transactions (id, user_id, category_id, amount, day, description, payment_method,
		                          is_recurring_instance, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.CategoryID, core.AmountString(tx.Amount), tx.Date, tx.Description,
		string(tx.PaymentMethod), boolToInt(tx.IsRecurringInstance), tx.CreatedAt, tx.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	logMutation(ctx, "Transaction inserted", "transactions", tx.ID)
	return nil
}

func (t transactionRepo) Delete(ctx context.Context, id string) error {
	if err := t.r.exec(ctx, &t.r.txsChanged, true, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	logMutation(ctx, "Transaction deleted", "transactions", id)
	return nil
}
