package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/mayesha-3/Ammo-Inventory-Management-System/approval"

// ApprovalMetrics records order decisions and issued rounds. All methods are
// safe on a nil receiver so callers can run without metrics.
type ApprovalMetrics struct {
	decisions metric.Int64Counter
	failures  metric.Int64Counter
	retries   metric.Int64Counter
	issued    metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewApprovalMetrics creates the approval instruments on mp.
// Pass otel.GetMeterProvider() after Setup so they are exported on /metrics.
func NewApprovalMetrics(mp metric.MeterProvider) (*ApprovalMetrics, error) {
	meter := mp.Meter(meterName)

	decisions, err := meter.Int64Counter("ammo.order.decisions",
		metric.WithDescription("Order status transitions, by resulting status."))
	if err != nil {
		return nil, fmt.Errorf("decisions counter: %w", err)
	}
	failures, err := meter.Int64Counter("ammo.approval.failures",
		metric.WithDescription("Approval attempts that did not commit, by error kind."))
	if err != nil {
		return nil, fmt.Errorf("failures counter: %w", err)
	}
	retries, err := meter.Int64Counter("ammo.approval.retries",
		metric.WithDescription("Approvals retried after a concurrent-update conflict."))
	if err != nil {
		return nil, fmt.Errorf("retries counter: %w", err)
	}
	issued, err := meter.Int64Counter("ammo.rounds.issued",
		metric.WithDescription("Rounds removed from inventory by approvals, by caliber."),
		metric.WithUnit("{round}"))
	if err != nil {
		return nil, fmt.Errorf("issued counter: %w", err)
	}
	duration, err := meter.Float64Histogram("ammo.approval.duration",
		metric.WithDescription("Wall time of approval transactions, including a retry."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("duration histogram: %w", err)
	}

	return &ApprovalMetrics{
		decisions: decisions,
		failures:  failures,
		retries:   retries,
		issued:    issued,
		duration:  duration,
	}, nil
}

// Decision counts one order moving to status.
func (m *ApprovalMetrics) Decision(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// Failure counts one failed approval, labelled with a short reason.
func (m *ApprovalMetrics) Failure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// Retry counts one conflict retry.
func (m *ApprovalMetrics) Retry(ctx context.Context) {
	if m == nil {
		return
	}
	m.retries.Add(ctx, 1)
}

// Issued adds rounds of caliber to the issued total.
func (m *ApprovalMetrics) Issued(ctx context.Context, caliber string, rounds int) {
	if m == nil {
		return
	}
	m.issued.Add(ctx, int64(rounds), metric.WithAttributes(attribute.String("caliber", caliber)))
}

// ObserveDuration records the duration of one approval call.
func (m *ApprovalMetrics) ObserveDuration(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Record(ctx, d.Seconds())
}
