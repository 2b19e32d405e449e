package liquidation

import (
	"context"
	"log"
	"time"
)

// Runner drives periodic sweeps and accepts out-of-band kicks (e.g. after a
// price update).
type Runner struct {
	uc       *Usecase
	interval time.Duration
	kick     chan struct{}
}

func NewRunner(uc *Usecase, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{uc: uc, interval: interval, kick: make(chan struct{}, 1)}
}

// Kick schedules an immediate sweep; a pending kick is not queued twice.
func (r *Runner) Kick() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		case <-r.kick:
		}
		rep, err := r.uc.EvaluateAll(ctx)
		if err != nil {
			log.Printf("liquidation sweep: %v", err)
			continue
		}
		if rep.Liquidated > 0 || rep.Defaulted > 0 {
			log.Printf("liquidation sweep: checked=%d liquidated=%d defaulted=%d",
				rep.Checked, rep.Liquidated, rep.Defaulted)
		}
	}
}
