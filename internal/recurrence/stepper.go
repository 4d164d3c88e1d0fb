// Package recurrence projects the due occurrences of recurring bills.
//
// Each frequency has its own Stepper that moves a due day forward by one
// period. The projector itself is stateless: every call starts again from
// the bill's NextDueDate and never writes back to the bill.
package recurrence

import (
	"fmt"

	"finboard/internal/core"
	"finboard/internal/datekey"
)

// Stepper advances a due day by one period of its frequency.
type Stepper interface {
	Step(d datekey.Day) datekey.Day
}

// DayStepper advances by a fixed number of days.
type DayStepper int

// Step returns d plus the configured number of days.
func (s DayStepper) Step(d datekey.Day) datekey.Day {
	return d.AddDays(int(s))
}

// MonthStepper advances by a number of calendar months, letting overflowing
// days roll into the following month.
type MonthStepper int

// Step returns d plus the configured number of months.
func (s MonthStepper) Step(d datekey.Day) datekey.Day {
	return d.AddMonths(int(s))
}

var steppers = map[core.Frequency]Stepper{
	core.Weekly:   DayStepper(7),
	core.Biweekly: DayStepper(14),
	core.Monthly:  MonthStepper(1),
}

// GetStepper returns the stepper registered for a frequency.
func GetStepper(f core.Frequency) (Stepper, error) {
	s, ok := steppers[f]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", f)
	}
	return s, nil
}

// RegisterStepper adds or replaces the stepper for a frequency.
// It is meant to be called during initialization only.
func RegisterStepper(f core.Frequency, s Stepper) {
	steppers[f] = s
}
