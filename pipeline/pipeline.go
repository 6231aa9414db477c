// Package pipeline turns the full fetched order collection into the exact
// page the dashboard renders: scope filter, free-text filter, sort, paginate.
// Every step is a pure function of its inputs.
package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"relocation-admin-api/models"
)

// DefaultPageSize is the fixed page size of the orders table
const DefaultPageSize = 20

type SortField string

const (
	SortByID           SortField = "id"
	SortByCreationDate SortField = "creationDate"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Query is one request against the order list. CustomerID/ConsultantID are
// scope filters supplied by navigation context; zero means no scoping on
// that axis.
type Query struct {
	Search        string
	CustomerID    int
	ConsultantID  int
	SortField     SortField
	SortDirection SortDirection
	Page          int
	PageSize      int
}

// Result is the page to render plus paging metadata.
type Result struct {
	Orders     []models.Order `json:"orders"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
	Total      int            `json:"total"`
}

// Run applies the whole pipeline: filter, sort, paginate.
func Run(orders []models.Order, q Query) Result {
	q = normalize(q)
	matched := Filter(orders, q)
	Sort(matched, q.SortField, q.SortDirection)
	page, totalPages, pageNum := Paginate(matched, q.Page, q.PageSize)
	return Result{
		Orders:     page,
		Page:       pageNum,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
		Total:      len(matched),
	}
}

func normalize(q Query) Query {
	if q.SortField != SortByID && q.SortField != SortByCreationDate {
		q.SortField = SortByID
	}
	if q.SortDirection != Asc && q.SortDirection != Desc {
		q.SortDirection = Desc
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Filter returns the orders matching the query's scope and search text.
// The result is a fresh slice; the input is never mutated.
func Filter(orders []models.Order, q Query) []models.Order {
	lower := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !matchesScope(o, q) {
			continue
		}
		if matchesSearch(o, lower) {
			out = append(out, o)
		}
	}
	return out
}

func matchesScope(o models.Order, q Query) bool {
	if q.CustomerID != 0 && (o.Customer == nil || o.Customer.ID != q.CustomerID) {
		return false
	}
	if q.ConsultantID != 0 && (o.Consultant == nil || o.Consultant.ID != q.ConsultantID) {
		return false
	}
	return true
}

// matchesSearch implements the free-text match: case-insensitive substring
// over order id, customer/consultant names, status, and every item's service
// type, addresses and note. A "#n" query matches the order id (or parent
// order id) exactly instead.
func matchesSearch(o models.Order, lower string) bool {
	if lower == "" {
		return true
	}
	if strings.HasPrefix(lower, "#") {
		id, err := strconv.Atoi(lower[1:])
		if err != nil {
			return false
		}
		return o.ID == id || (o.ParentOrderID != nil && *o.ParentOrderID == id)
	}
	fields := []string{
		strconv.Itoa(o.ID),
		o.Customer.FullName(),
		o.Consultant.FullName(),
		string(o.Status),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lower) {
			return true
		}
	}
	for _, item := range o.Items {
		itemFields := []string{
			string(item.ServiceType),
			item.FromAddress,
			item.ToAddress,
			item.Note,
		}
		for _, f := range itemFields {
			if strings.Contains(strings.ToLower(f), lower) {
				return true
			}
		}
	}
	return false
}

// Sort orders in place by id or creation date. The sort is stable, so ties
// keep the underlying collection order.
func Sort(orders []models.Order, field SortField, dir SortDirection) {
	key := func(o models.Order) int64 {
		if field == SortByCreationDate {
			t := o.CreationTime()
			if t.IsZero() {
				return 0 // missing creationDate sorts as epoch 0
			}
			return t.UnixMilli()
		}
		return int64(o.ID)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := key(orders[i]), key(orders[j])
		if dir == Asc {
			return a < b
		}
		return a > b
	})
}

// Paginate slices into fixed-size pages. An out-of-range page is clamped to
// the last page; an empty collection yields page 1 of 0.
func Paginate(orders []models.Order, page, size int) ([]models.Order, int, int) {
	totalPages := (len(orders) + size - 1) / size
	if totalPages == 0 {
		return []models.Order{}, 0, 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := start + size
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end], totalPages, page
}
