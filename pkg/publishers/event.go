package publishers

import (
	"time"

	"github.com/google/uuid"
)

// Event describes one finished Rahkaran operation. Error is set instead of
// Result when the operation failed.
type Event struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	BaseURL    string    `json:"base_url"`
	Args       []string  `json:"args,omitempty"`
	Result     any       `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	ExecutedAt time.Time `json:"executed_at"`
}

// NewEvent records the outcome of operation; a non-nil opErr replaces result.
func NewEvent(operation, baseURL string, args []string, result any, opErr error) Event {
	evt := Event{
		ID:         uuid.NewString(),
		Operation:  operation,
		BaseURL:    baseURL,
		Args:       args,
		Result:     result,
		ExecutedAt: time.Now().UTC(),
	}
	if opErr != nil {
		evt.Result = nil
		evt.Error = opErr.Error()
	}
	return evt
}

// Status is "ok" or "failed".
func (e Event) Status() string {
	if e.Error != "" {
		return "failed"
	}
	return "ok"
}

// attributes are the routing keys attached to queue and topic messages.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{
		"operation": e.Operation,
		"status":    e.Status(),
	}
	if e.BaseURL != "" {
		attrs["base_url"] = e.BaseURL
	}
	return attrs
}
