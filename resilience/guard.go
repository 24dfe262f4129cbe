package resilience

import "context"

// Guard applies a rate limit and then a concurrency limit around a call.
// Either may be absent.
type Guard struct {
	limiter  *RateLimiter
	bulkhead *Bulkhead
}

// NewGuard builds a guard from cfg. It returns nil when cfg sets no limit;
// a nil *Guard runs calls directly.
func NewGuard(cfg *Config) *Guard {
	if !cfg.IsEnabled() {
		return nil
	}
	g := &Guard{}
	if cfg.Rate > 0 {
		g.limiter = NewRateLimiter(cfg.Rate, cfg.Burst)
	}
	if cfg.MaxConcurrent > 0 {
		g.bulkhead = NewBulkhead(cfg.MaxConcurrent, cfg.MaxWait)
	}
	return g
}

// Do runs fn once the limits admit it. fn is never run when admission
// fails.
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if g.bulkhead != nil {
		release, err := g.bulkhead.Acquire(ctx)
		if err != nil {
			return err
		}
		defer release()
	}
	return fn(ctx)
}
