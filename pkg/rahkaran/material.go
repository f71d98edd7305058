package rahkaran

import (
	"context"
	"net/http"
)

// GetTrackingFactors fetches the tracking factor definitions (batch numbers,
// serial parameters and the like).
func (c *Client) GetTrackingFactors(ctx context.Context) (Record, error) {
	return c.Call(ctx, http.MethodGet, c.endpoints.TrackingFactors, nil, nil)
}
