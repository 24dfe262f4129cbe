// Package resilience limits how hard a client presses a remote service: a
// token bucket bounds the call rate and a bulkhead bounds calls in flight.
// Neither retries. A rejected call fails before it is sent.
//
//	g := resilience.NewGuard(&resilience.Config{Rate: 20, MaxConcurrent: 4})
//	err := g.Do(ctx, func(ctx context.Context) error { return send(ctx) })
package resilience
