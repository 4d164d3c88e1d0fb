package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finboard/internal/core"
)

func testCategories() core.Categories {
	return core.IndexCategories([]core.Category{
		{ID: "cat_groceries", Name: "Groceries", TypeID: core.ExpenseTypeID},
		{ID: "cat_paycheck", Name: "Paycheck", TypeID: core.IncomeTypeID},
		{ID: "cat_side", Name: "Side gig", TypeID: core.ExpenseTypeID},
		{ID: "cat_legacy", Name: "Legacy", TypeID: "income"},
	})
}

func TestIsIncome(t *testing.T) {
	cats := testCategories()
	c := New(core.IncomeTypeID, "cat_side")

	tests := []struct {
		name       string
		categoryID string
		want       bool
	}{
		{name: "income type", categoryID: "cat_paycheck", want: true},
		{name: "expense type", categoryID: "cat_groceries", want: false},
		{name: "override beats declared type", categoryID: "cat_side", want: true},
		{name: "dangling id is expense", categoryID: "cat_missing", want: false},
		{name: "empty id is expense", categoryID: "", want: false},
		{name: "literal income string is not the sentinel", categoryID: "cat_legacy", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsIncome(tt.categoryID, cats))
		})
	}
}

func TestOverrideAppliesWithoutCategory(t *testing.T) {
	c := New("", "cat_paycheck")
	assert.True(t, c.IsIncome("cat_paycheck", nil))
	assert.Equal(t, core.IncomeTypeID, c.IncomeTypeID())
}

func TestZeroClassifierUsesDefaultSentinel(t *testing.T) {
	var c Classifier
	assert.True(t, c.IsIncome("cat_paycheck", testCategories()))
	assert.False(t, c.IsIncome("cat_groceries", testCategories()))
}

func TestPartition(t *testing.T) {
	txs := []core.Transaction{
		{ID: "a", CategoryID: "cat_groceries"},
		{ID: "b", CategoryID: "cat_paycheck"},
		{ID: "c", CategoryID: "cat_unknown"},
	}
	income, expense := Default().Partition(txs, testCategories())
	assert.Len(t, income, 1)
	assert.Equal(t, "b", income[0].ID)
	assert.Len(t, expense, 2)
	assert.Equal(t, "a", expense[0].ID)
	assert.Equal(t, "c", expense[1].ID)
}
