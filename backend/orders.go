package backend

import (
	"context"
	"fmt"
	"net/http"

	"relocation-admin-api/models"
)

// ItemPayload is one service item in an order create/update request.
// ID is omitted for new items; the backend assigns the real identity.
type ItemPayload struct {
	ID          int64              `json:"id,omitempty"`
	ServiceType models.ServiceType `json:"serviceType"`
	Status      models.OrderStatus `json:"status"`
	FromAddress string             `json:"fromAddress"`
	ToAddress   string             `json:"toAddress"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Note        string             `json:"note"`
}

// OrderPayload is the body of POST /api/orders and PUT /api/orders/{id}.
type OrderPayload struct {
	CustomerID    int                `json:"customerId"`
	ConsultantID  int                `json:"consultantId"`
	Status        models.OrderStatus `json:"status"`
	ParentOrderID *int               `json:"parentOrderId,omitempty"`
	Items         []ItemPayload      `json:"items"`
}

// ItemFromModel converts a domain item for transmission, dropping
// placeholder ids so the backend treats the item as new.
func ItemFromModel(item models.OrderItem) ItemPayload {
	p := ItemPayload{
		ServiceType: item.ServiceType,
		Status:      item.Status,
		FromAddress: item.FromAddress,
		ToAddress:   item.ToAddress,
		StartDate:   item.StartDate,
		EndDate:     item.EndDate,
		Note:        item.Note,
	}
	if item.Persisted() {
		p.ID = item.ID
	}
	return p
}

// ListOrders fetches the full order collection with nested items.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder persists a new order and returns it with backend-assigned ids.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder replaces an order, including per-item updates.
func (c *Client) UpdateOrder(ctx context.Context, id int, payload OrderPayload) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d", id), payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order permanently.
func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), nil, nil)
}
