package audit

import (
	"context"
	"log/slog"
	"time"
)

// Store persists audit events. It is append-only so sinks can replay.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByApplication(ctx context.Context, applicationID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Sink forwards audit events to an external system, such as a Kafka topic.
// Delivery is best-effort from the publisher's point of view.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger
}

type PublisherOption func(*Publisher)

// WithSink attaches an external sink in addition to the store.
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) { p.sink = sink }
}

// WithLogger attaches a logger for sink delivery failures.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = logger }
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit persists the event and forwards it to the sink when one is attached.
// Sink failures are logged, not returned: the store copy is the record of
// truth and a broker outage must not fail the originating request.
func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	if base.Category == "" {
		base.Category = AuditEvent(base.Action).Category()
	}
	if err := p.store.Append(ctx, base); err != nil {
		return err
	}
	if p.sink != nil {
		if err := p.sink.Publish(ctx, base); err != nil {
			p.logger.WarnContext(ctx, "audit sink delivery failed",
				"action", base.Action,
				"application_id", base.ApplicationID,
				"error", err,
			)
		}
	}
	return nil
}

// ListByApplication returns the audit trail for one application.
func (p *Publisher) ListByApplication(ctx context.Context, applicationID string) ([]Event, error) {
	return p.store.ListByApplication(ctx, applicationID)
}

// ListRecent returns the most recent events across all applications.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	return p.store.ListRecent(ctx, limit)
}
