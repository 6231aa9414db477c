package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"relocation-admin-api/backend"
	"relocation-admin-api/composer"
	"relocation-admin-api/config"
	"relocation-admin-api/models"
	"relocation-admin-api/pipeline"
	"relocation-admin-api/prefs"
	"relocation-admin-api/statemachine"
)

// ListOrders runs the order list pipeline: scope filter, free-text search,
// sort, paginate. Sort and search choices are remembered across sessions
// and come back as defaults when the query string leaves them out.
func ListOrders(c *gin.Context) {
	q := pipeline.Query{
		Search:        config.Prefs.Get(prefs.KeySearchText, ""),
		SortField:     pipeline.SortField(config.Prefs.Get(prefs.KeySortField, string(pipeline.SortByID))),
		SortDirection: pipeline.SortDirection(config.Prefs.Get(prefs.KeySortDirection, string(pipeline.Desc))),
		PageSize:      pipeline.DefaultPageSize,
	}
	if v, ok := c.GetQuery("search"); ok {
		q.Search = v
		_ = config.Prefs.Set(prefs.KeySearchText, v)
	}
	if v, ok := c.GetQuery("sortField"); ok {
		q.SortField = pipeline.SortField(v)
		_ = config.Prefs.Set(prefs.KeySortField, v)
	}
	if v, ok := c.GetQuery("sortDirection"); ok {
		q.SortDirection = pipeline.SortDirection(v)
		_ = config.Prefs.Set(prefs.KeySortDirection, v)
	}
	q.CustomerID, _ = strconv.Atoi(c.Query("customerId"))
	q.ConsultantID, _ = strconv.Atoi(c.Query("consultantId"))
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))

	orders, err := config.Backend.ListOrders(c.Request.Context())
	if err != nil {
		// Recoverable: the table renders empty alongside the notice.
		empty := pipeline.Run(nil, q)
		c.JSON(http.StatusOK, gin.H{
			"error":  "Failed to load orders from the backend",
			"result": empty,
		})
		return
	}

	result := pipeline.Run(orders, q)
	c.JSON(http.StatusOK, gin.H{
		"result":        result,
		"search":        q.Search,
		"sortField":     q.SortField,
		"sortDirection": q.SortDirection,
	})
}

// GetOrderDetail returns one order with its items.
func GetOrderDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	order, err := config.Backend.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondBackendError(c, err, "Failed to load order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ComposeOrderRequest is the composed submission: exactly one of CustomerID
// or NewCustomer, an assigned consultant, and the staged service items.
type ComposeOrderRequest struct {
	CustomerID    int                     `json:"customerId"`
	NewCustomer   *composer.CustomerDraft `json:"newCustomer"`
	ConsultantID  int                     `json:"consultantId"`
	ParentOrderID *int                    `json:"parentOrderId"`
	Items         []composer.ItemDraft    `json:"items"`
}

// ComposeOrder replays the submission through the composition flow, so the
// same staging and validation rules apply whether items arrive one by one
// or as a finished payload.
func ComposeOrder(c *gin.Context) {
	var req ComposeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := composer.New()
	for _, item := range req.Items {
		draft.SetServiceType(item.ServiceType)
		draft.SetFromAddress(item.FromAddress)
		draft.SetToAddress(item.ToAddress)
		draft.SetNote(item.Note)
		draft.SetStartDate(item.StartDate)
		if err := draft.SetEndDate(item.EndDate); err != nil {
			respondFieldError(c, err)
			return
		}
		if err := draft.AddItem(); err != nil {
			respondFieldError(c, err)
			return
		}
	}
	if req.NewCustomer != nil {
		draft.BeginNewCustomer()
		draft.SetCustomerDraft(*req.NewCustomer)
	} else {
		draft.SelectCustomer(req.CustomerID)
	}
	draft.SelectConsultant(req.ConsultantID)
	if req.ParentOrderID != nil {
		draft.SetParentOrder(*req.ParentOrderID)
	}

	order, err := draft.Submit(c.Request.Context(), config.Backend)
	if err != nil {
		if fieldErr, ok := asFieldError(err); ok {
			respondFieldError(c, fieldErr)
			return
		}
		respondBackendError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": order})
}

// UpdateOrderRequest carries a full order edit: status change, consultant
// reassignment and the merged item list (existing items keep their backend
// ids, new ones arrive with placeholder or zero ids).
type UpdateOrderRequest struct {
	Status        models.OrderStatus `json:"status" binding:"required"`
	CustomerID    int                `json:"customerId" binding:"required"`
	ConsultantID  int                `json:"consultantId" binding:"required"`
	ParentOrderID *int               `json:"parentOrderId"`
	Items         []models.OrderItem `json:"items" binding:"required,min=1"`
}

// UpdateOrder validates status transitions and item dates, then replays the
// edit against the backend.
func UpdateOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := config.Backend.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondBackendError(c, err, "Failed to load order")
		return
	}

	if err := statemachine.CanTransition(existing.Status, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot change order status",
			"reason":        err.Error(),
			"current_state": existing.Status,
		})
		return
	}

	existingItems := make(map[int64]models.OrderItem, len(existing.Items))
	for _, item := range existing.Items {
		existingItems[item.ID] = item
	}

	payload := backend.OrderPayload{
		CustomerID:    req.CustomerID,
		ConsultantID:  req.ConsultantID,
		Status:        req.Status,
		ParentOrderID: req.ParentOrderID,
		Items:         make([]backend.ItemPayload, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		if item.EndDate < item.StartDate {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Item end date must not be before its start date",
			})
			return
		}
		if item.Status == "" {
			item.Status = models.StatusPending
		}
		if prev, ok := existingItems[item.ID]; ok && item.Persisted() {
			if err := statemachine.CanTransition(prev.Status, item.Status); err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":  "Cannot change service item status",
					"reason": err.Error(),
				})
				return
			}
		}
		payload.Items = append(payload.Items, backend.ItemFromModel(item))
	}

	order, err := config.Backend.UpdateOrder(c.Request.Context(), id, payload)
	if err != nil {
		respondBackendError(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully", "order": order})
}

// DeleteOrder removes an order permanently. The confirmation step lives in
// the presentation layer; deletion is never implicit.
func DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	if err := config.Backend.DeleteOrder(c.Request.Context(), id); err != nil {
		respondBackendError(c, err, "Failed to delete order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully", "order_id": id})
}

// GetStateMachineInfo returns the status transition table for documentation
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"states":      []models.OrderStatus{models.StatusPending, models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
		"transitions": info,
	})
}
