package events

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// injectTrace copies the OTel trace context of ctx into msg metadata.
func injectTrace(ctx context.Context, msg *message.Message) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(msg.Metadata))
}

// extractTrace returns ctx carrying the trace stored in msg metadata, so
// handler spans join the trace of the request that published the event.
func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

func messageAttrs(topic string, msg *message.Message) []slog.Attr {
	attrs := []slog.Attr{slog.String("topic", topic), slog.String("message_id", msg.UUID)}
	if v := msg.Metadata.Get(metadataVersion); v != "" {
		attrs = append(attrs, slog.String("event_version", v))
	}
	return attrs
}
