package session

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry instruments the session: one span per executed command plus
// counters for commands, checkouts, and login attempts.
type Telemetry struct {
	tracer trace.Tracer

	commands  metric.Int64Counter
	checkouts metric.Int64Counter
	logins    metric.Int64Counter
}

// NewTelemetry creates the session instruments on the given providers.
func NewTelemetry(mp metric.MeterProvider, tp trace.TracerProvider) (*Telemetry, error) {
	meter := mp.Meter("corona.session")

	commands, err := meter.Int64Counter("session.commands",
		metric.WithDescription("Commands executed, by name"))
	if err != nil {
		return nil, errors.Wrap(err, "create commands counter")
	}

	checkouts, err := meter.Int64Counter("session.checkouts",
		metric.WithDescription("Orders created via checkout"))
	if err != nil {
		return nil, errors.Wrap(err, "create checkouts counter")
	}

	logins, err := meter.Int64Counter("session.logins",
		metric.WithDescription("Login attempts, by outcome"))
	if err != nil {
		return nil, errors.Wrap(err, "create logins counter")
	}

	return &Telemetry{
		tracer:    tp.Tracer("corona.session"),
		commands:  commands,
		checkouts: checkouts,
		logins:    logins,
	}, nil
}

func (t *Telemetry) startCommand(ctx context.Context, name string) (context.Context, trace.Span) {
	t.commands.Add(ctx, 1, metric.WithAttributes(attribute.String("command", name)))
	return t.tracer.Start(ctx, "session.command",
		trace.WithAttributes(attribute.String("command", name)))
}

func (t *Telemetry) recordCheckout(ctx context.Context) {
	t.checkouts.Add(ctx, 1)
}

func (t *Telemetry) recordLogin(ctx context.Context, ok bool) {
	t.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", ok)))
}
