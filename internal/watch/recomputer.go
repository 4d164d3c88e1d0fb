// Package watch keeps the dashboard and report views current as the
// underlying repositories change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"finboard/internal/dashboard"
	"finboard/internal/datekey"
	"finboard/internal/notify"
	"finboard/internal/ports"
)

// Result is both views computed from one snapshot.
type Result struct {
	Seq       uint64              `json:"seq"`
	Today     datekey.Day         `json:"today"`
	Range     datekey.Range       `json:"range"`
	Dashboard dashboard.Dashboard `json:"dashboard"`
	// Report is only set when HasReport is true.
	Report    dashboard.Report `json:"report"`
	HasReport bool             `json:"hasReport"`
}

// LoadSnapshot reads every collection concurrently.
func LoadSnapshot(ctx context.Context, repos ports.Repositories) (dashboard.Snapshot, error) {
	var s dashboard.Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Categories, err = repos.Categories.Snapshot(ctx)
		if err != nil {
			err = fmt.Errorf("load categories: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		s.CategoryTypes, err = repos.CategoryTypes.Snapshot(ctx)
		if err != nil {
			err = fmt.Errorf("load category types: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		s.Transactions, err = repos.Transactions.Snapshot(ctx)
		if err != nil {
			err = fmt.Errorf("load transactions: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		s.Bills, err = repos.Bills.Snapshot(ctx)
		if err != nil {
			err = fmt.Errorf("load bills: %w", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.Snapshot{}, err
	}
	return s, nil
}

// Recomputer rebuilds both views whenever a repository changes or the
// selected range moves. Recomputation is always a full rebuild from a
// fresh snapshot; the newest result wins.
type Recomputer struct {
	repos ports.Repositories
	opts  dashboard.Options
	today func() datekey.Day

	trigger chan struct{}
	seq     atomic.Uint64
	subs    notify.Broadcaster

	mu     sync.RWMutex
	rng    datekey.Range
	latest Result
	have   bool
}

// New creates a recomputer for rng. A zero range means "this month".
func New(repos ports.Repositories, opts dashboard.Options, rng datekey.Range) *Recomputer {
	return &Recomputer{
		repos:   repos,
		opts:    opts,
		today:   datekey.Today,
		trigger: make(chan struct{}, 1),
		rng:     rng,
	}
}

// SetRange selects the report range and schedules a recompute.
func (r *Recomputer) SetRange(rng datekey.Range) {
	r.mu.Lock()
	r.rng = rng
	r.mu.Unlock()
	r.poke()
}

// Range returns the selected report range, resolving the zero range
// against today.
func (r *Recomputer) Range() datekey.Range {
	r.mu.RLock()
	rng := r.rng
	r.mu.RUnlock()
	if rng == (datekey.Range{}) {
		return datekey.ThisMonth(r.today())
	}
	return rng
}

// Latest returns the most recent result, if any has been computed.
func (r *Recomputer) Latest() (Result, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, r.have
}

// Subscribe signals after each stored result. Signals coalesce.
func (r *Recomputer) Subscribe() (<-chan struct{}, func()) {
	return r.subs.Subscribe()
}

func (r *Recomputer) poke() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Recompute builds both views now and stores the result unless a newer
// one landed first.
func (r *Recomputer) Recompute(ctx context.Context) (Result, error) {
	seq := r.seq.Add(1)
	rng := r.Range()
	today := r.today()

	snap, err := LoadSnapshot(ctx, r.repos)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Seq:       seq,
		Today:     today,
		Range:     rng,
		Dashboard: dashboard.BuildDashboard(snap, today, r.opts),
	}
	res.Report, res.HasReport = dashboard.BuildReport(snap, rng, r.opts)

	r.mu.Lock()
	stored := !r.have || seq > r.latest.Seq
	if stored {
		r.latest = res
		r.have = true
	}
	r.mu.Unlock()

	if stored {
		r.subs.Notify()
	}
	return res, nil
}

// Run recomputes once, then again after every repository change or range
// update, until ctx is done. Recomputes never overlap.
func (r *Recomputer) Run(ctx context.Context) error {
	sources := []ports.Watchable{r.repos.Categories, r.repos.CategoryTypes, r.repos.Transactions, r.repos.Bills}
	var wg sync.WaitGroup
	for _, src := range sources {
		ch, cancel := src.Subscribe()
		defer cancel()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-ch:
					if !ok {
						return
					}
					r.poke()
				}
			}
		}()
	}
	defer wg.Wait()

	r.poke()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.trigger:
			if _, err := r.Recompute(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.ErrorContext(ctx, "Failed to recompute views", "error", err)
			}
		}
	}
}
