package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orders_backend/internal/services"
	"orders_backend/pkg/utils"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// GetOrders handles fetching all orders as summary rows, newest first.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrders()
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService.GetOrders")
		utils.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID handles fetching a single order by ID with its items.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	idStr := c.Param("id")
	orderID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondBadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondNotFound(c)
			return
		}
		utils.LogError(err, "GetOrderByID: Error from orderService.GetOrderByID for ID "+idStr)
		utils.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder handles the creation of a new order with its items.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrder: Failed to bind JSON")
		utils.RespondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.orderService.CreateOrder(req)
	if err != nil {
		utils.LogError(err, "CreateOrder: Error from orderService.CreateOrder")
		utils.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"order_id":     result.OrderID,
		"order_number": result.OrderNumber,
	})
}

// UpdateOrder handles a full update of an order; the submitted item set
// replaces the stored one.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	idStr := c.Param("id")
	orderID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondBadRequest(c, "Invalid order ID format")
		return
	}

	var req services.SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateOrder: Failed to bind JSON for ID "+idStr)
		utils.RespondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.orderService.UpdateOrder(orderID, req); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondNotFound(c)
			return
		}
		utils.LogError(err, "UpdateOrder: Error from orderService.UpdateOrder for ID "+idStr)
		utils.RespondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": orderID,
	})
}
