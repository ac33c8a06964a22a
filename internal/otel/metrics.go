// Package otel creates the metric instruments of the report generator and the
// roster importer from the global OpenTelemetry meter provider. With no SDK
// installed the global provider is a no-op.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/provial/novedades"

// Meter returns the global meter of the module.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Counters holds the instruments shared by the form and the importer.
type Counters struct {
	generated  metric.Int64Counter
	rejected   metric.Int64Counter
	rosterRows metric.Int64Counter
}

// NewCounters creates the instruments on m.
func NewCounters(m metric.Meter) (*Counters, error) {
	c := &Counters{}
	var err error

	c.generated, err = m.Int64Counter(
		"novedades.reports.generated",
		metric.WithDescription("Total messages generated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating generated counter: %w", err)
	}

	c.rejected, err = m.Int64Counter(
		"novedades.reports.rejected",
		metric.WithDescription("Total generation attempts rejected by validation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rejected counter: %w", err)
	}

	c.rosterRows, err = m.Int64Counter(
		"novedades.roster.rows",
		metric.WithDescription("Total roster rows read, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating roster rows counter: %w", err)
	}

	return c, nil
}

// ReportGenerated counts a rendered message.
func (c *Counters) ReportGenerated(ctx context.Context, variant string) {
	if c == nil {
		return
	}
	c.generated.Add(ctx, 1, metric.WithAttributes(attribute.String("variant", variant)))
}

// ReportRejected counts a generation stopped by validation.
func (c *Counters) ReportRejected(ctx context.Context, reason string) {
	if c == nil {
		return
	}
	c.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RosterRows counts roster rows with the given outcome (imported, skipped).
func (c *Counters) RosterRows(ctx context.Context, outcome string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.rosterRows.Add(ctx, int64(n), metric.WithAttributes(attribute.String("outcome", outcome)))
}
