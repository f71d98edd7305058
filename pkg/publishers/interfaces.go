package publishers

import (
	"context"

	"github.com/samvad-hq/rahkaran-client/pkg/rahkaran"
)

// Publisher delivers operation events to one downstream sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the structured logging surface shared with the Rahkaran client.
type Logger = rahkaran.Logger

func ensureLogger(log Logger) Logger {
	if log == nil {
		return rahkaran.NopLogger{}
	}
	return log
}
