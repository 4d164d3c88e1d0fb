package core

import (
	"errors"
	"fmt"
	"strings"

	"finboard/internal/datekey"
)

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"

	Cash   PaymentMethod = "cash"
	Debit  PaymentMethod = "debit"
	Credit PaymentMethod = "credit"
)

// Well-known category type ids.
const (
	IncomeTypeID  = "ct_income"
	ExpenseTypeID = "ct_expense"
)

type (
	Frequency     string
	PaymentMethod string

	// AuditFields is stamped once at creation and never mutated.
	AuditFields struct {
		CreatedAt string `json:"createdAt"` // RFC 3339
		CreatedBy string `json:"createdBy,omitempty"`
	}

	CategoryType struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Alias string `json:"alias"`
		AuditFields
	}

	Category struct {
		ID     string `json:"id"`
		UserID string `json:"userId"`
		Name   string `json:"name"`
		Alias  string `json:"alias,omitempty"`
		TypeID string `json:"typeId"`
		AuditFields
	}

	Transaction struct {
		ID            string        `json:"id"`
		UserID        string        `json:"userId"`
		CategoryID    string        `json:"categoryId"`
		Amount        float64       `json:"amount"`
		Date          string        `json:"date"` // calendar day, YYYY-MM-DD
		Description   string        `json:"description,omitempty"`
		PaymentMethod PaymentMethod `json:"paymentMethod"`
		// IsRecurringInstance marks a posted occurrence of a recurring bill.
		IsRecurringInstance bool `json:"isRecurringInstance"`
		AuditFields
	}

	RecurringBill struct {
		ID          string    `json:"id"`
		UserID      string    `json:"userId"`
		CategoryID  string    `json:"categoryId"`
		Name        string    `json:"name"`
		Amount      float64   `json:"amount"` // per occurrence
		Frequency   Frequency `json:"frequency"`
		StartDate   string    `json:"startDate"`
		NextDueDate string    `json:"nextDueDate"`
		Active      bool      `json:"active"`
		AuditFields
	}
)

var (
	ErrInvalidAmount        = errors.New("amount must be greater than 0")
	ErrInvalidDate          = errors.New("invalid date")
	ErrEmptyName            = errors.New("name is required")
	ErrEmptyCategory        = errors.New("category is required")
	ErrEmptyCategoryType    = errors.New("category type is required")
	ErrInvalidFrequency     = errors.New("invalid frequency")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidDescription   = errors.New("invalid description")
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Biweekly, Monthly:
		return true
	}
	return false
}

// Valid reports whether p is one of the supported payment methods.
func (p PaymentMethod) Valid() bool {
	switch p {
	case Cash, Debit, Credit:
		return true
	}
	return false
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.TypeID) == "" {
		return ErrEmptyCategoryType
	}
	return nil
}

func (t Transaction) Validate() error {
	if !datekey.Parse(t.Date).Valid() {
		return ErrInvalidDate
	}
	if !(t.Amount > 0) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if !t.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	if len(t.Description) > 200 {
		return fmt.Errorf("description too long (max 200 characters): %w", ErrInvalidDescription)
	}
	return nil
}

func (b RecurringBill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if !(b.Amount > 0) {
		return ErrInvalidAmount
	}
	if !b.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if !datekey.Parse(b.StartDate).Valid() {
		return fmt.Errorf("invalid start date: %w", ErrInvalidDate)
	}
	if !datekey.Parse(b.NextDueDate).Valid() {
		return fmt.Errorf("invalid next due date: %w", ErrInvalidDate)
	}
	if strings.TrimSpace(b.CategoryID) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// IsValidationError reports whether err is one of the record validation errors.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount, ErrInvalidDate, ErrEmptyName, ErrEmptyCategory,
		ErrEmptyCategoryType, ErrInvalidFrequency, ErrInvalidPaymentMethod,
		ErrInvalidDescription,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
