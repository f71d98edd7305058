package publishers

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Builder creates a Publisher from a sink definition.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Registry maps sink types to builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// DefaultRegistry knows the http, sqs, sns and pubsub sinks.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeHTTP, newHTTPPublisher)
	r.Register(TypeSQS, newSQSPublisher)
	r.Register(TypeSNS, newSNSPublisher)
	r.Register(TypePubSub, newPubSubPublisher)
	return r
}

// Register associates a builder with a sink type, replacing any previous one.
func (r *Registry) Register(typ string, builder Builder) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" || builder == nil {
		return
	}
	r.builders[typ] = builder
}

// Build creates the publisher for a single definition.
func (r *Registry) Build(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	builder, ok := r.builders[strings.ToLower(cfg.Type)]
	if !ok {
		return nil, fmt.Errorf("no publisher registered for type %q (publisher %q)", cfg.Type, cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return builder(ctx, cfg, log)
}

// BuildFanout builds every definition and routes events by each one's
// operation filter. Publishers built before a failure are closed again.
func (r *Registry) BuildFanout(ctx context.Context, cfgs []PublisherConfig, log Logger) (*Fanout, error) {
	f := &Fanout{}
	for _, cfg := range cfgs {
		pub, err := r.Build(ctx, cfg, log)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("build publisher %q: %w", cfg.ID, err), f.Close())
		}
		f.add(pub, cfg.Operations)
	}
	return f, nil
}
