package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	events []Event
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(_ context.Context, evt Event) error {
	s.events = append(s.events, evt)
	return s.err
}

type closingPublisher struct {
	stubPublisher
	closed bool
}

func (c *closingPublisher) Close() error {
	c.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	ok := &stubPublisher{id: "ok", typ: TypeHTTP}
	bad := &stubPublisher{id: "bad", typ: TypeHTTP, err: errors.New("failed")}
	fanout := NewFanout(ok, nil, bad)

	count, err := fanout.Publish(context.Background(), Event{Operation: "shops"})
	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if len(ok.events) != 1 || len(bad.events) != 1 {
		t.Fatalf("expected both sinks to be tried")
	}
	if fanout.Size() != 2 {
		t.Fatalf("nil publishers should be skipped, size=%d", fanout.Size())
	}
}

func TestFanoutRoutesByOperation(t *testing.T) {
	all := &stubPublisher{id: "all", typ: TypeHTTP}
	vouchers := &stubPublisher{id: "vouchers", typ: TypeSQS}
	f := &Fanout{}
	f.add(all, nil)
	f.add(vouchers, []string{"register-voucher"})

	if n, err := f.Publish(context.Background(), Event{Operation: "shops"}); err != nil || n != 1 {
		t.Fatalf("shops: delivered=%d err=%v", n, err)
	}
	if n, err := f.Publish(context.Background(), Event{Operation: "Register-Voucher"}); err != nil || n != 2 {
		t.Fatalf("register-voucher: delivered=%d err=%v", n, err)
	}
	if len(vouchers.events) != 1 || vouchers.events[0].Operation != "Register-Voucher" {
		t.Fatalf("unexpected routed events %#v", vouchers.events)
	}
}

func TestFanoutCloseReleasesClosers(t *testing.T) {
	closer := &closingPublisher{stubPublisher: stubPublisher{id: "ps", typ: TypePubSub}}
	fanout := NewFanout(&stubPublisher{id: "h", typ: TypeHTTP}, closer)

	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closer.closed {
		t.Fatalf("expected closer to be closed")
	}
}

func TestBuildFanoutClosesBuiltPublishersOnFailure(t *testing.T) {
	built := &closingPublisher{stubPublisher: stubPublisher{id: "first", typ: "stub"}}
	reg := NewRegistry()
	reg.Register("stub", func(context.Context, PublisherConfig, Logger) (Publisher, error) { return built, nil })
	reg.Register("broken", func(context.Context, PublisherConfig, Logger) (Publisher, error) {
		return nil, errors.New("no credentials")
	})

	_, err := reg.BuildFanout(context.Background(), []PublisherConfig{
		{ID: "first", Type: "stub"},
		{ID: "second", Type: "broken"},
	}, nil)
	if err == nil {
		t.Fatalf("expected build error")
	}
	if !built.closed {
		t.Fatalf("expected earlier publisher to be closed")
	}
}

func TestDefaultRegistryBuildsHTTPAndRejectsUnknown(t *testing.T) {
	reg := DefaultRegistry()
	f, err := reg.BuildFanout(context.Background(), []PublisherConfig{
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildFanout: %v", err)
	}
	if f.Size() != 1 {
		t.Fatalf("expected 1 publisher, got %d", f.Size())
	}
	if _, err := reg.Build(context.Background(), PublisherConfig{ID: "x", Type: "kafka"}, nil); err == nil {
		t.Fatalf("expected unknown type error")
	}
}

func TestNewEventRecordsFailure(t *testing.T) {
	ok := NewEvent("shops", "https://erp", nil, []string{"a"}, nil)
	if ok.ID == "" || ok.Status() != "ok" || ok.Result == nil {
		t.Fatalf("unexpected success event %#v", ok)
	}
	failed := NewEvent("shops", "https://erp", nil, []string{"a"}, errors.New("status 500"))
	if failed.Status() != "failed" || failed.Result != nil || failed.Error != "status 500" {
		t.Fatalf("unexpected failure event %#v", failed)
	}
	if failed.ID == ok.ID {
		t.Fatalf("event ids must differ")
	}
}
