// Package observability wires OpenTelemetry tracing and metrics for REST
// calls.
//
//	tel := observability.NewTelemetry(
//	    observability.DefaultTracerConfig("gorest"),
//	    observability.DefaultMeterConfig("gorest"),
//	)
//	_ = tel.Start(ctx)
//	defer tel.Stop(ctx)
//
//	metrics, _ := observability.NewCallMetrics(observability.Meter("gorest"))
//	ctx, span := observability.StartSpan(ctx, observability.SpanRESTCall)
package observability
