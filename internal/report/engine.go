// Package report aggregates transactions and recurring bills into totals,
// category rankings and daily cashflow series.
//
// Every function here is pure and total. Malformed days never match a range,
// non-finite amounts count as zero, and dangling category ids are treated as
// expense with a fallback display name.
package report

import (
	"sort"

	"finboard/internal/classify"
	"finboard/internal/core"
)

// Fallback display names for category ids missing from the category set.
const (
	UnknownSpendingName = "Unknown"
	UnknownIncomeName   = "Income"
)

// Kind selects which side of the classification a ranking covers.
type Kind int

const (
	Spending Kind = iota
	Income
)

func (k Kind) String() string {
	if k == Income {
		return "income"
	}
	return "spending"
}

func (k Kind) fallbackName() string {
	if k == Income {
		return UnknownIncomeName
	}
	return UnknownSpendingName
}

// Totals holds income and expense sums. Net is always Income - Expense.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// Add combines two totals.
func (t Totals) Add(o Totals) Totals {
	return newTotals(t.Income+o.Income, t.Expense+o.Expense)
}

func newTotals(income, expense float64) Totals {
	return Totals{Income: income, Expense: expense, Net: income - expense}
}

// CategoryRow is one ranked category.
type CategoryRow struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Amount       float64 `json:"amount"`
}

// Engine runs aggregations with a fixed classification contract.
type Engine struct {
	classifier classify.Classifier
}

// New returns an engine that classifies with c.
func New(c classify.Classifier) Engine {
	return Engine{classifier: c}
}

// Classifier exposes the engine's classification contract.
func (e Engine) Classifier() classify.Classifier {
	return e.classifier
}

// Totals sums txs by classification. Callers filter by range first.
func (e Engine) Totals(txs []core.Transaction, cats core.Categories) Totals {
	var income, expense float64
	for _, t := range txs {
		amount := core.SafeAmount(t.Amount)
		if e.classifier.IsIncome(t.CategoryID, cats) {
			income += amount
		} else {
			expense += amount
		}
	}
	return newTotals(income, expense)
}

// TopCategories ranks the categories of one kind by summed amount,
// descending, truncated to n rows. n <= 0 returns every row. Equal amounts
// keep the order in which their category first appeared in txs.
func (e Engine) TopCategories(txs []core.Transaction, cats core.Categories, kind Kind, n int) []CategoryRow {
	index := make(map[string]int)
	var rows []CategoryRow
	for _, t := range txs {
		if e.classifier.IsIncome(t.CategoryID, cats) != (kind == Income) {
			continue
		}
		i, ok := index[t.CategoryID]
		if !ok {
			i = len(rows)
			index[t.CategoryID] = i
			rows = append(rows, CategoryRow{
				CategoryID:   t.CategoryID,
				CategoryName: cats.Name(t.CategoryID, kind.fallbackName()),
			})
		}
		rows[i].Amount += core.SafeAmount(t.Amount)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount > rows[j].Amount
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
