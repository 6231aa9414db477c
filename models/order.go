package models

import "time"

// OrderStatus represents the lifecycle state of an order or a service item
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ServiceType identifies the concrete relocation service of one item
type ServiceType string

const (
	ServiceMoving   ServiceType = "MOVING"
	ServicePacking  ServiceType = "PACKING"
	ServiceCleaning ServiceType = "CLEANING"
)

// ServiceTypes lists every valid service type, in display order
var ServiceTypes = []ServiceType{ServiceMoving, ServicePacking, ServiceCleaning}

// Valid reports whether the service type is one of the known values
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceMoving, ServicePacking, ServiceCleaning:
		return true
	}
	return false
}

// placeholderIDFloor separates backend-assigned item ids (small sequential
// integers) from locally generated placeholders (epoch-millisecond scale).
const placeholderIDFloor = 1_000_000_000

// OrderItem is one concrete service inside an order. Dates travel as
// ISO YYYY-MM-DD strings, so lexicographic comparison is date comparison.
type OrderItem struct {
	ID          int64       `json:"id,omitempty"`
	ServiceType ServiceType `json:"serviceType"`
	Status      OrderStatus `json:"status"`
	FromAddress string      `json:"fromAddress"`
	ToAddress   string      `json:"toAddress"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	Note        string      `json:"note,omitempty"`
}

// Persisted reports whether the item carries a backend-assigned id.
// Staged items hold epoch-scale placeholder ids until the backend replaces
// them; the distinction drives conditional display ("Item ID" is hidden for
// unpersisted items) and the new-vs-existing merge during order edit.
func (i OrderItem) Persisted() bool {
	return i.ID > 0 && i.ID < placeholderIDFloor
}

// NewStagedItemID returns a placeholder identity for a not-yet-persisted item
func NewStagedItemID() int64 {
	return time.Now().UnixMilli()
}

// Order is a customer engagement containing one or more service items,
// owned by one consultant. ParentOrderID optionally links a derivative
// PACKING/CLEANING order to the MOVING order it was spawned from; nothing
// is inherited through the link.
type Order struct {
	ID            int         `json:"id"`
	Status        OrderStatus `json:"status"`
	Customer      *Person     `json:"customer"`
	Consultant    *Person     `json:"consultant"`
	CreationDate  string      `json:"creationDate,omitempty"`
	LastUpdated   string      `json:"lastUpdated,omitempty"`
	ParentOrderID *int        `json:"parentOrderId,omitempty"`
	Items         []OrderItem `json:"items"`
}

// timestampLayouts covers the formats the backend has been seen emitting
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a backend timestamp leniently. Empty or unparseable
// values collapse to the zero time so sorting treats them as epoch 0.
func ParseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CreationTime returns the parsed creationDate, epoch 0 when absent
func (o Order) CreationTime() time.Time {
	return ParseTimestamp(o.CreationDate)
}
