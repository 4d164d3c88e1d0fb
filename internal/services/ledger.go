package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/datekey"
	"finboard/internal/ports"
)

// ID prefixes for records created by the ledger.
const (
	CategoryIDPrefix    = "cat_"
	TransactionIDPrefix = "tx_"
	BillIDPrefix        = "rb_"
)

type (
	NewCategory struct {
		Name   string `json:"name"`
		Alias  string `json:"alias,omitempty"`
		TypeID string `json:"typeId"`
	}

	NewTransaction struct {
		CategoryID          string             `json:"categoryId"`
		Amount              float64            `json:"amount"`
		Date                string             `json:"date"`
		Description         string             `json:"description,omitempty"`
		PaymentMethod       core.PaymentMethod `json:"paymentMethod"`
		IsRecurringInstance bool               `json:"isRecurringInstance,omitempty"`
	}

	NewBill struct {
		Name        string         `json:"name"`
		CategoryID  string         `json:"categoryId"`
		Amount      float64        `json:"amount"`
		Frequency   core.Frequency `json:"frequency"`
		StartDate   string         `json:"startDate"`
		NextDueDate string         `json:"nextDueDate"`
		Active      bool           `json:"active"`
	}
)

// Ledger creates and removes ledger records on behalf of the current user.
// It assigns ids and audit metadata, validates, stores, and announces each
// change when a publisher is configured. Publish failures are logged and
// never fail the call; the record is already stored.
type Ledger struct {
	repos     ports.Repositories
	publisher amqp.Publisher
	userID    string
	now       func() time.Time
	newID     func(prefix string) string
}

// NewLedger returns a ledger acting as userID. publisher may be nil.
func NewLedger(repos ports.Repositories, publisher amqp.Publisher, userID string) *Ledger {
	return &Ledger{
		repos:     repos,
		publisher: publisher,
		userID:    userID,
		now:       time.Now,
		newID:     func(prefix string) string { return prefix + uuid.NewString() },
	}
}

func (l *Ledger) audit() core.AuditFields {
	return core.AuditFields{
		CreatedAt: l.now().UTC().Format(time.RFC3339),
		CreatedBy: l.userID,
	}
}

// AddCategory creates a category under an existing category type.
func (l *Ledger) AddCategory(ctx context.Context, in NewCategory) (core.Category, error) {
	c := core.Category{
		ID:          l.newID(CategoryIDPrefix),
		UserID:      l.userID,
		Name:        strings.TrimSpace(in.Name),
		Alias:       strings.TrimSpace(in.Alias),
		TypeID:      strings.TrimSpace(in.TypeID),
		AuditFields: l.audit(),
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	if err := l.repos.Categories.Add(ctx, c); err != nil {
		return core.Category{}, fmt.Errorf("save category: %w", err)
	}
	l.publish(ctx, amqp.EntityCategory, amqp.OpCreated, c.ID)
	return c, nil
}

// AddTransaction records a transaction. The date may be in any accepted
// day format and is stored canonical.
func (l *Ledger) AddTransaction(ctx context.Context, in NewTransaction) (core.Transaction, error) {
	t := core.Transaction{
		ID:                  l.newID(TransactionIDPrefix),
		UserID:              l.userID,
		CategoryID:          strings.TrimSpace(in.CategoryID),
		Amount:              core.SafeAmount(in.Amount),
		Date:                datekey.Normalize(in.Date),
		Description:         strings.TrimSpace(in.Description),
		PaymentMethod:       in.PaymentMethod,
		IsRecurringInstance: in.IsRecurringInstance,
		AuditFields:         l.audit(),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := l.repos.Transactions.Add(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	l.publish(ctx, amqp.EntityTransaction, amqp.OpCreated, t.ID)
	return t, nil
}

// AddBill creates a recurring bill.
func (l *Ledger) AddBill(ctx context.Context, in NewBill) (core.RecurringBill, error) {
	b := core.RecurringBill{
		ID:          l.newID(BillIDPrefix),
		UserID:      l.userID,
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Name:        strings.TrimSpace(in.Name),
		Amount:      core.SafeAmount(in.Amount),
		Frequency:   in.Frequency,
		StartDate:   datekey.Normalize(in.StartDate),
		NextDueDate: datekey.Normalize(in.NextDueDate),
		Active:      in.Active,
		AuditFields: l.audit(),
	}
	if err := b.Validate(); err != nil {
		return core.RecurringBill{}, err
	}

	if err := l.repos.Bills.Add(ctx, b); err != nil {
		return core.RecurringBill{}, fmt.Errorf("save bill: %w", err)
	}
	l.publish(ctx, amqp.EntityBill, amqp.OpCreated, b.ID)
	return b, nil
}

// SetBillActive toggles whether a bill is projected and posted.
func (l *Ledger) SetBillActive(ctx context.Context, id string, active bool) (core.RecurringBill, error) {
	b, err := l.repos.Bills.Get(ctx, id)
	if err != nil {
		return core.RecurringBill{}, fmt.Errorf("get bill %s: %w", id, err)
	}
	if b.Active == active {
		return b, nil
	}
	b.Active = active
	if err := l.repos.Bills.Update(ctx, b); err != nil {
		return core.RecurringBill{}, fmt.Errorf("update bill %s: %w", id, err)
	}
	l.publish(ctx, amqp.EntityBill, amqp.OpUpdated, b.ID)
	return b, nil
}

func (l *Ledger) DeleteCategory(ctx context.Context, id string) error {
	if err := l.repos.Categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	l.publish(ctx, amqp.EntityCategory, amqp.OpDeleted, id)
	return nil
}

func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	if err := l.repos.Transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	l.publish(ctx, amqp.EntityTransaction, amqp.OpDeleted, id)
	return nil
}

func (l *Ledger) DeleteBill(ctx context.Context, id string) error {
	if err := l.repos.Bills.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete bill %s: %w", id, err)
	}
	l.publish(ctx, amqp.EntityBill, amqp.OpDeleted, id)
	return nil
}

func (l *Ledger) publish(ctx context.Context, entity, op, id string) {
	slog.InfoContext(ctx, "Ledger record changed", "entity", entity, "operation", op, "id", id)
	if l.publisher == nil {
		return
	}
	if err := l.publisher.PublishChange(ctx, amqp.NewChangeMessage(entity, op, id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"entity", entity,
			"id", id,
			"error", err)
	}
}
