package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"relocation-admin-api/config"
	"relocation-admin-api/stats"
)

// GetStatistics returns the dashboard summary plus the recent-orders table.
// The backend's precomputed summary is preferred; when that endpoint is
// unavailable the same shape is computed here from the raw orders, and the
// presentation layer cannot tell the difference.
func GetStatistics(c *gin.Context) {
	ctx := c.Request.Context()

	orders, ordersErr := config.Backend.ListOrders(ctx)

	summary, err := config.Backend.StatisticsSummary(ctx)
	source := "backend"
	if err != nil {
		if ordersErr != nil {
			respondBackendError(c, ordersErr, "Failed to load statistics")
			return
		}
		config.Log.WithError(err).Warn("summary endpoint unavailable, computing client-side")
		summary = stats.Compute(orders, time.Now())
		source = "computed"
	}

	response := gin.H{
		"summary": summary,
		"source":  source,
	}
	if ordersErr != nil {
		// Recent orders degrade independently of the summary.
		response["error"] = "Failed to load recent orders"
		response["recentOrders"] = []interface{}{}
	} else {
		response["recentOrders"] = stats.RecentOrders(orders, stats.TopN)
	}
	c.JSON(http.StatusOK, response)
}
