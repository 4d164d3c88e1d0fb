package memory

import "finboard/internal/core"

// FixtureUserID owns every seeded record.
const FixtureUserID = "local-user"

// Fixtures returns the demo data set the store is seeded with.
func Fixtures() ([]core.CategoryType, []core.Category, []core.Transaction, []core.RecurringBill) {
	types := []core.CategoryType{
		{ID: core.ExpenseTypeID, Name: "Expense", Alias: "expense", AuditFields: core.AuditFields{CreatedAt: "2026-02-01T10:00:00Z"}},
		{ID: core.IncomeTypeID, Name: "Income", Alias: "income", AuditFields: core.AuditFields{CreatedAt: "2026-02-01T10:00:00Z"}},
	}

	cats := []core.Category{
		{ID: "cat_groceries", UserID: FixtureUserID, Name: "Groceries", Alias: "food", TypeID: core.ExpenseTypeID},
		{ID: "cat_dining", UserID: FixtureUserID, Name: "Dining", Alias: "restaurants", TypeID: core.ExpenseTypeID},
		{ID: "cat_gas", UserID: FixtureUserID, Name: "Gas", Alias: "fuel", TypeID: core.ExpenseTypeID},
		{ID: "cat_rent", UserID: FixtureUserID, Name: "Rent", Alias: "housing", TypeID: core.ExpenseTypeID},
		{ID: "cat_utilities", UserID: FixtureUserID, Name: "Utilities", Alias: "bills", TypeID: core.ExpenseTypeID},
		{ID: "cat_paycheck", UserID: FixtureUserID, Name: "Paycheck", Alias: "salary", TypeID: core.IncomeTypeID},
	}

	txs := []core.Transaction{
		{
			ID: "tx_1001", UserID: FixtureUserID, CategoryID: "cat_groceries",
			Amount: 42.17, Date: "2026-01-01", Description: "Grocery run", PaymentMethod: core.Debit,
			AuditFields: core.AuditFields{CreatedAt: "2026-02-01T12:00:00Z"},
		},
		{
			ID: "tx_1002", UserID: FixtureUserID, CategoryID: "cat_gas",
			Amount: 18.5, Date: "2026-02-01", Description: "Fill up", PaymentMethod: core.Credit,
			AuditFields: core.AuditFields{CreatedAt: "2026-02-01T14:00:00Z"},
		},
		{
			ID: "tx_1003", UserID: FixtureUserID, CategoryID: "cat_paycheck",
			Amount: 1250, Date: "2026-01-30", Description: "Direct deposit", PaymentMethod: core.Cash,
			AuditFields: core.AuditFields{CreatedAt: "2026-01-30T09:00:00Z"},
		},
		{
			ID: "tx_1004", UserID: FixtureUserID, CategoryID: "cat_rent",
			Amount: 2100, Date: "2026-01-28", Description: "Monthly rent", PaymentMethod: core.Cash,
			IsRecurringInstance: true,
			AuditFields:         core.AuditFields{CreatedAt: "2026-01-28T08:00:00Z"},
		},
	}

	bills := []core.RecurringBill{
		{
			ID: "rb_2001", UserID: FixtureUserID, CategoryID: "cat_utilities", Name: "Electric",
			Amount: 160, Frequency: core.Monthly, StartDate: "2025-12-01", NextDueDate: "2026-02-10", Active: true,
			AuditFields: core.AuditFields{CreatedAt: "2025-12-01T00:00:00Z"},
		},
		{
			ID: "rb_2002", UserID: FixtureUserID, CategoryID: "cat_rent", Name: "Rent",
			Amount: 2100, Frequency: core.Monthly, StartDate: "2025-01-01", NextDueDate: "2026-02-01", Active: true,
			AuditFields: core.AuditFields{CreatedAt: "2025-01-01T00:00:00Z"},
		},
	}

	return types, cats, txs, bills
}
