package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/example/courtbook/internal/availability"
	"github.com/example/courtbook/internal/resources"
	"github.com/example/courtbook/internal/slots"
)

// Keeper keeps every templated resource's slot horizon topped up. It polls
// on an interval and re-runs generation; persistCandidates skips anything
// already present, so overlapping runs are harmless.
type Keeper struct {
	Resources *resources.Repo
	Templates *availability.Repo
	Slots     *slots.Store

	Interval    time.Duration
	HorizonDays int
	SlotLength  time.Duration

	wg sync.WaitGroup
}

func (k *Keeper) Run(ctx context.Context) error {
	t := time.NewTicker(k.Interval)
	defer t.Stop()

	// kick immediately
	k.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			k.wg.Wait()
			return ctx.Err()
		case <-t.C:
			k.tick(ctx)
		}
	}
}

func (k *Keeper) tick(ctx context.Context) {
	rs, err := k.Resources.ListTemplated(ctx)
	if err != nil {
		log.Printf("keeper: list resources failed: %v", err)
		return
	}

	for _, r := range rs {
		r := r
		k.wg.Add(1)
		go func() {
			defer k.wg.Done()
			k.topUp(ctx, r)
		}()
	}
}

func (k *Keeper) topUp(ctx context.Context, r resources.Resource) {
	tpl, err := k.Templates.Get(ctx, r.ID)
	if err != nil {
		log.Printf("keeper: template for %s failed: %v", r.ID, err)
		return
	}
	loc, err := r.Location()
	if err != nil {
		log.Printf("keeper: timezone for %s invalid: %v", r.ID, err)
		return
	}

	cands := availability.Expand(tpl, loc, time.Now(), k.HorizonDays, k.SlotLength)
	rep, err := k.Slots.PersistCandidates(ctx, r.ID, cands)
	if err != nil {
		log.Printf("keeper: persist for %s failed: %v", r.ID, err)
		return
	}
	if rep.Inserted > 0 {
		log.Printf("keeper: %s: %d slots inserted, %d skipped", r.Name, rep.Inserted, rep.Skipped)
	}
}
