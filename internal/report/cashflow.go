package report

import (
	"slices"
	"sort"

	"finboard/internal/core"
	"finboard/internal/datekey"
	"finboard/internal/recurrence"
)

// Bucket is one day of cashflow. Net is Income - Expense - Projected;
// Projected stays zero in the actual-only variant.
type Bucket struct {
	Date      datekey.Day `json:"date"`
	Income    float64     `json:"income"`
	Expense   float64     `json:"expense"`
	Projected float64     `json:"projected"`
	Net       float64     `json:"net"`
}

func (b *Bucket) settle() {
	b.Net = b.Income - b.Expense - b.Projected
}

// Cashflow buckets the actual transactions of every day in rng and returns
// the buckets newest-first. Days without activity are zero-filled.
func (e Engine) Cashflow(txs []core.Transaction, cats core.Categories, rng datekey.Range) []Bucket {
	buckets, index := newBuckets(rng)
	e.accumulate(buckets, index, txs, cats)
	for i := range buckets {
		buckets[i].settle()
	}
	slices.Reverse(buckets)
	return buckets
}

// Chronological returns a copy of buckets sorted by day ascending.
func Chronological(buckets []Bucket) []Bucket {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Projection is the cashflow of a range blending actual transactions with
// projected recurring bills that have not been posted yet.
type Projection struct {
	Range datekey.Range `json:"range"`
	// Buckets are in chronological order, one per day of Range.
	Buckets            []Bucket                `json:"buckets"`
	Occurrences        []recurrence.Occurrence `json:"occurrences"`
	ActualIncome       float64                 `json:"actualIncome"`
	ActualSpending     float64                 `json:"actualSpending"`
	ProjectedRecurring float64                 `json:"projectedRecurring"`
	Net                float64                 `json:"net"`
}

// ProjectedCashflow filters txs to rng, projects every bill over rng, drops
// the occurrences already posted as recurring instances and buckets the rest
// per day alongside the actual amounts.
func (e Engine) ProjectedCashflow(txs []core.Transaction, bills []core.RecurringBill, cats core.Categories, rng datekey.Range) Projection {
	inRange := FilterRange(txs, rng)
	occs := Dedup(recurrence.ProjectAll(bills, rng), inRange)

	buckets, index := newBuckets(rng)
	e.accumulate(buckets, index, inRange, cats)
	for _, o := range occs {
		if i, ok := index[o.Date.Key()]; ok {
			buckets[i].Projected += o.Amount
		}
	}
	for i := range buckets {
		buckets[i].settle()
	}

	totals := e.Totals(inRange, cats)
	projected := recurrence.Total(occs)
	return Projection{
		Range:              rng,
		Buckets:            buckets,
		Occurrences:        occs,
		ActualIncome:       totals.Income,
		ActualSpending:     totals.Expense,
		ProjectedRecurring: projected,
		Net:                totals.Income - totals.Expense - projected,
	}
}

type postedKey struct {
	categoryID string
	day        int
}

// Dedup removes projected occurrences that already have a posted recurring
// instance with the same category on the same day. Each posted instance
// suppresses at most one occurrence, and non-instance transactions never
// suppress anything.
func Dedup(occs []recurrence.Occurrence, txs []core.Transaction) []recurrence.Occurrence {
	posted := make(map[postedKey]int)
	for _, t := range txs {
		if !t.IsRecurringInstance {
			continue
		}
		k := datekey.KeyOf(t.Date)
		if k == 0 {
			continue
		}
		posted[postedKey{t.CategoryID, k}]++
	}

	out := make([]recurrence.Occurrence, 0, len(occs))
	for _, o := range occs {
		k := postedKey{o.CategoryID, o.Date.Key()}
		if posted[k] > 0 {
			posted[k]--
			continue
		}
		out = append(out, o)
	}
	return out
}

// newBuckets allocates one zeroed bucket per day of rng in ascending order
// and an index from day key to position.
func newBuckets(rng datekey.Range) ([]Bucket, map[int]int) {
	days := rng.Days()
	buckets := make([]Bucket, len(days))
	index := make(map[int]int, len(days))
	for i, d := range days {
		buckets[i].Date = d
		index[d.Key()] = i
	}
	return buckets, index
}

func (e Engine) accumulate(buckets []Bucket, index map[int]int, txs []core.Transaction, cats core.Categories) {
	for _, t := range txs {
		i, ok := index[datekey.KeyOf(t.Date)]
		if !ok {
			continue
		}
		amount := core.SafeAmount(t.Amount)
		if e.classifier.IsIncome(t.CategoryID, cats) {
			buckets[i].Income += amount
		} else {
			buckets[i].Expense += amount
		}
	}
}
