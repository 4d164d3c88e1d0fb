package storage

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

type categoryTypeRepo struct{ r *SQLiteRepository }

func (c categoryTypeRepo) Subscribe() (<-chan struct{}, func()) {
	return c.r.typesChanged.Subscribe()
}

func (c categoryTypeRepo) Snapshot(ctx context.Context) ([]core.CategoryType, error) {
	rows, err := c.r.db.QueryContext(ctx,
		`SELECT id, name, alias, created_at, created_by FROM category_types ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query category types: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryType
	for rows.Next() {
		var ct core.CategoryType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Alias, &ct.CreatedAt, &ct.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan category type: %w", err)
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

type categoryRepo struct{ r *SQLiteRepository }

func (c categoryRepo) Subscribe() (<-chan struct{}, func()) {
	return c.r.catsChanged.Subscribe()
}

func (c categoryRepo) Snapshot(ctx context.Context) ([]core.Category, error) {
	rows, err := c.r.db.QueryContext(ctx,
		`SELECT id, user_id, name, alias, type_id, created_at, created_by FROM categories ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var cat core.Category
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Alias, &cat.TypeID, &cat.CreatedAt, &cat.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (c categoryRepo) Add(ctx context.Context, cat core.Category) error {
	err := c.r.exec(ctx, &c.r.catsChanged, false,
		`INSERT INTO categories (id, user_id, name, alias, type_id, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.UserID, cat.Name, cat.Alias, cat.TypeID, cat.CreatedAt, cat.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	logMutation(ctx, "Category inserted", "categories", cat.ID)
	return nil
}

func (c categoryRepo) Delete(ctx context.Context, id string) error {
	if err := c.r.exec(ctx, &c.r.catsChanged, true, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	logMutation(ctx, "Category deleted", "categories", id)
	return nil
}
