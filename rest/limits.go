package rest

import (
	"context"

	"github.com/kbukum/gorest/httpclient"
	"github.com/kbukum/gorest/resilience"
)

// guardedTransport admits each exchange through the service's rate and
// concurrency limits. A rejected exchange is never sent and surfaces as a
// transport error.
type guardedTransport struct {
	next  Transport
	guard *resilience.Guard
}

func (t guardedTransport) Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	var resp *httpclient.Response
	err := t.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = t.next.Do(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
