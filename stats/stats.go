// Package stats computes the dashboard statistics client-side from the raw
// order collection. It produces the same shape as the backend's precomputed
// summary endpoint, so the two sources are interchangeable.
package stats

import (
	"sort"
	"time"

	"relocation-admin-api/models"
)

// PricePerOrder is the flat per-order revenue estimate. A deliberately
// naive placeholder, not a pricing model.
const PricePerOrder = 50

// TopN is how many consultants/customers the top groupings keep.
const TopN = 5

// trailingMonths is the calendar window of the monthly histogram.
const trailingMonths = 12

// Compute derives the full summary from the order collection. now anchors
// the trailing monthly window.
func Compute(orders []models.Order, now time.Time) *models.StatisticsSummary {
	summary := &models.StatisticsSummary{
		TotalOrders:           len(orders),
		EstimatedTotalRevenue: len(orders) * PricePerOrder,
		OrdersByStatus:        make(map[string]int),
		MonthlyOrders:         monthlyBuckets(orders, now),
	}

	for _, o := range orders {
		summary.OrdersByStatus[string(o.Status)]++
	}
	summary.OrdersInProgress = summary.OrdersByStatus[string(models.StatusInProgress)]
	summary.PendingServices = summary.OrdersByStatus[string(models.StatusPending)]

	summary.TopConsultants = topBy(orders, func(o models.Order) *models.Person { return o.Consultant })
	summary.TopCustomers = topBy(orders, func(o models.Order) *models.Person { return o.Customer })
	return summary
}

// monthlyBuckets counts orders by creation month over the trailing window.
// Months with zero orders still appear with count 0; orders outside the
// window are dropped.
func monthlyBuckets(orders []models.Order, now time.Time) map[string]int {
	buckets := make(map[string]int, trailingMonths)
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := trailingMonths - 1; i >= 0; i-- {
		buckets[anchor.AddDate(0, -i, 0).Format("2006-01")] = 0
	}
	for _, o := range orders {
		created := o.CreationTime()
		if created.IsZero() {
			continue
		}
		key := created.Format("2006-01")
		if _, ok := buckets[key]; ok {
			buckets[key]++
		}
	}
	return buckets
}

// topBy groups orders by person and keeps the TopN largest groups, sorted by
// descending count. Ties keep first-encountered order, so the result is
// stable for a given collection order.
func topBy(orders []models.Order, person func(models.Order) *models.Person) []models.NameCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, o := range orders {
		name := person(o).FullName()
		if name == "" {
			continue
		}
		if _, ok := counts[name]; !ok {
			firstSeen[name] = i
		}
		counts[name]++
	}

	entries := make([]models.NameCount, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, models.NameCount{Name: name, Count: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Name] < firstSeen[entries[j].Name]
	})
	if len(entries) > TopN {
		entries = entries[:TopN]
	}
	return entries
}

// RecentOrders returns the n most recently created orders, newest first.
// A simple sort and slice, not aggregation. The input is not mutated.
func RecentOrders(orders []models.Order, n int) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreationTime().After(sorted[j].CreationTime())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
