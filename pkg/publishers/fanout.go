package publishers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

type route struct {
	pub        Publisher
	operations []string
}

func (r route) accepts(operation string) bool {
	return len(r.operations) == 0 || slices.Contains(r.operations, strings.ToLower(operation))
}

// Fanout dispatches events to every publisher whose filter matches.
type Fanout struct {
	routes []route
}

// NewFanout routes every event to each of pubs.
func NewFanout(pubs ...Publisher) *Fanout {
	f := &Fanout{}
	for _, p := range pubs {
		f.add(p, nil)
	}
	return f
}

func (f *Fanout) add(p Publisher, operations []string) {
	if p == nil {
		return
	}
	f.routes = append(f.routes, route{pub: p, operations: operations})
}

// Publish sends evt to the matching publishers and returns how many accepted it.
// One failing sink does not stop delivery to the others.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil {
		return 0, nil
	}
	var errs []error
	delivered := 0
	for _, r := range f.routes {
		if !r.accepts(evt.Operation) {
			continue
		}
		if err := r.pub.Publish(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("%s publisher[%s]: %w", r.pub.Type(), r.pub.ID(), err))
			continue
		}
		delivered++
	}
	return delivered, errors.Join(errs...)
}

// Size returns the number of publishers.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.routes)
}

// Close releases publishers that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, r := range f.routes {
		c, ok := r.pub.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s publisher[%s] close: %w", r.pub.Type(), r.pub.ID(), err))
		}
	}
	return errors.Join(errs...)
}
