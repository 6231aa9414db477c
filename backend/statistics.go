package backend

import (
	"context"
	"net/http"

	"relocation-admin-api/models"
)

// StatisticsSummary fetches the backend-precomputed dashboard summary.
func (c *Client) StatisticsSummary(ctx context.Context) (*models.StatisticsSummary, error) {
	var summary models.StatisticsSummary
	if err := c.do(ctx, http.MethodGet, "/api/statistics/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
