package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for service spans.
const TracerName = "repairdesk"

// Attribute keys set on service spans.
const (
	SpanJobID         = attribute.Key("shop.job_id")
	SpanInvoiceID     = attribute.Key("shop.invoice_id")
	SpanItemID        = attribute.Key("shop.item_id")
	SpanLineCount     = attribute.Key("shop.line_count")
	SpanAmount        = attribute.Key("shop.amount")
	SpanQuantity      = attribute.Key("shop.quantity")
	SpanTxType        = attribute.Key("shop.transaction_type")
	SpanIDFallback    = attribute.Key("shop.id_fallback")
	SpanSequenceKey   = attribute.Key("shop.sequence_key")
	SpanPaymentMethod = attribute.Key("shop.payment_method")
)

// StartServiceSpan starts an internal span named "service.method",
// e.g. "invoice.create", on the global tracer provider. With no provider
// installed the span is a no-op.
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))
}

// EndServiceSpan marks the span failed when err is set, ok otherwise,
// and ends it. Meant for a deferred call over a named error result.
func EndServiceSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
