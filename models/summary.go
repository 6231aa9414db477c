package models

// NameCount is one entry of a top-N grouping, e.g. "Kari Nordmann": 7
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatisticsSummary is the read-only dashboard projection of the order
// collection. The backend can precompute it, or stats.Compute derives the
// same shape client-side from the raw orders; the presentation layer cannot
// tell the two apart.
//
// MonthlyOrders is keyed "2006-01" so lexicographic key order is
// chronological order.
type StatisticsSummary struct {
	TotalOrders           int            `json:"totalOrders"`
	OrdersInProgress      int            `json:"ordersInProgress"`
	PendingServices       int            `json:"pendingServices"`
	EstimatedTotalRevenue int            `json:"estimatedTotalRevenue"`
	OrdersByStatus        map[string]int `json:"ordersByStatus"`
	MonthlyOrders         map[string]int `json:"monthlyOrders"`
	TopConsultants        []NameCount    `json:"topConsultants"`
	TopCustomers          []NameCount    `json:"topCustomers"`
}
