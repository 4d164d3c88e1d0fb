// Package classify decides whether a transaction counts as income or expense.
package classify

import "finboard/internal/core"

// Classifier holds the canonical income contract: a category is income when
// its type id equals IncomeTypeID, or when its id is in the override set.
// Everything else, including unknown category ids, is expense.
type Classifier struct {
	incomeTypeID string
	overrides    map[string]struct{}
}

// New returns a classifier for incomeTypeID plus explicit income category ids.
// An empty incomeTypeID falls back to core.IncomeTypeID.
func New(incomeTypeID string, incomeCategoryIDs ...string) Classifier {
	if incomeTypeID == "" {
		incomeTypeID = core.IncomeTypeID
	}
	overrides := make(map[string]struct{}, len(incomeCategoryIDs))
	for _, id := range incomeCategoryIDs {
		if id != "" {
			overrides[id] = struct{}{}
		}
	}
	return Classifier{incomeTypeID: incomeTypeID, overrides: overrides}
}

// Default classifies by core.IncomeTypeID with no overrides.
func Default() Classifier {
	return New(core.IncomeTypeID)
}

// IsIncome is pure and total: missing categories are expense.
func (c Classifier) IsIncome(categoryID string, cats core.Categories) bool {
	if _, ok := c.overrides[categoryID]; ok {
		return true
	}
	cat, ok := cats[categoryID]
	if !ok {
		return false
	}
	typeID := c.incomeTypeID
	if typeID == "" {
		typeID = core.IncomeTypeID
	}
	return cat.TypeID == typeID
}

// Partition splits transactions into income and expense, preserving order.
func (c Classifier) Partition(txs []core.Transaction, cats core.Categories) (income, expense []core.Transaction) {
	for _, t := range txs {
		if c.IsIncome(t.CategoryID, cats) {
			income = append(income, t)
		} else {
			expense = append(expense, t)
		}
	}
	return income, expense
}

// IncomeTypeID returns the type id treated as income.
func (c Classifier) IncomeTypeID() string {
	if c.incomeTypeID == "" {
		return core.IncomeTypeID
	}
	return c.incomeTypeID
}

