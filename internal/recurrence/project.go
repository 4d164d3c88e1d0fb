package recurrence

import (
	"finboard/internal/core"
	"finboard/internal/datekey"
)

// maxSteps bounds the walk from a stale NextDueDate so projection stays total
// even for a stepper that never moves forward.
const maxSteps = 100_000

// Occurrence is one projected due date of a recurring bill.
type Occurrence struct {
	BillID     string      `json:"billId"`
	Name       string      `json:"name"`
	CategoryID string      `json:"categoryId"`
	Date       datekey.Day `json:"date"`
	Amount     float64     `json:"amount"`
}

// Project lists the occurrences of bill that fall within rng, in date order.
// Inactive bills, unknown frequencies, an unparseable NextDueDate and an
// invalid range all yield no occurrences.
func Project(bill core.RecurringBill, rng datekey.Range) []Occurrence {
	if !bill.Active || !rng.Valid() {
		return nil
	}
	stepper, err := GetStepper(bill.Frequency)
	if err != nil {
		return nil
	}
	due := datekey.Parse(bill.NextDueDate)
	if !due.Valid() {
		return nil
	}

	startKey, endKey := rng.Start.Key(), rng.End.Key()
	var out []Occurrence
	for i := 0; i < maxSteps && due.Valid(); i++ {
		key := due.Key()
		if key > endKey {
			break
		}
		if key >= startKey {
			out = append(out, occurrenceOf(bill, due))
		}
		next := stepper.Step(due)
		if !next.After(due) {
			break
		}
		due = next
	}
	return out
}

// ProjectAll concatenates the projections of every bill, bill by bill.
func ProjectAll(bills []core.RecurringBill, rng datekey.Range) []Occurrence {
	var out []Occurrence
	for _, b := range bills {
		out = append(out, Project(b, rng)...)
	}
	return out
}

// Advance walks bill from its NextDueDate through today. It returns every
// occurrence due on or before today and the first due day after today.
// Bills that cannot be projected return no occurrences and their current
// NextDueDate unchanged.
func Advance(bill core.RecurringBill, today datekey.Day) ([]Occurrence, datekey.Day) {
	due := datekey.Parse(bill.NextDueDate)
	if !bill.Active || !due.Valid() || !today.Valid() {
		return nil, due
	}
	stepper, err := GetStepper(bill.Frequency)
	if err != nil {
		return nil, due
	}

	var out []Occurrence
	for i := 0; i < maxSteps && !due.After(today); i++ {
		out = append(out, occurrenceOf(bill, due))
		next := stepper.Step(due)
		if !next.After(due) {
			break
		}
		due = next
	}
	return out, due
}

// Total sums the amounts of a set of occurrences.
func Total(occs []Occurrence) float64 {
	var sum float64
	for _, o := range occs {
		sum += o.Amount
	}
	return sum
}

func occurrenceOf(bill core.RecurringBill, d datekey.Day) Occurrence {
	return Occurrence{
		BillID:     bill.ID,
		Name:       bill.Name,
		CategoryID: bill.CategoryID,
		Date:       d,
		Amount:     core.SafeAmount(bill.Amount),
	}
}
