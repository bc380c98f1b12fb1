package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"orders_backend/internal/models"
	"orders_backend/internal/repositories"
	"orders_backend/pkg/utils"
)

var (
	// ErrOrderNotFound is returned when the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")
)

// orderNumberPrefix is the fixed part of generated order numbers,
// followed by YYYYMM and a 4-digit month-scoped sequence.
const orderNumberPrefix = "ORD"

// --- Data Transfer Objects (DTOs) ---

// OrderItemRequest is one submitted line item. Numeric fields are typed
// loosely on purpose: missing or non-numeric values coerce to zero via
// utils.ToDecimal / utils.ToInt64Value instead of failing the request.
type OrderItemRequest struct {
	Product         string      `json:"product"`
	SKU             string      `json:"sku"`
	Color           string      `json:"color"`
	Size            string      `json:"size"`
	Quantity        interface{} `json:"quantity"`
	Cost            interface{} `json:"cost"`
	Price           interface{} `json:"price"`
	DiscountPercent interface{} `json:"discount_percent"`
	Note            string      `json:"note"`
}

// SaveOrderRequest is the shared payload for creating and updating an order.
// total_sale/total_cost/gross_profit are never read from input; they are
// recomputed from Items on every call.
type SaveOrderRequest struct {
	Client          string             `json:"client"`
	Status          string             `json:"status"`
	Currency        string             `json:"currency"`
	PaymentTerms    string             `json:"payment_terms"`
	PlannedStart    string             `json:"planned_start"`
	PlannedEnd      string             `json:"planned_end"`
	ActualShip      string             `json:"actual_ship"`
	Logistics       string             `json:"logistics"`
	DiscountPercent interface{}        `json:"discount_percent"`
	ExtraCosts      interface{}        `json:"extra_costs"`
	Folder          string             `json:"folder"`
	Attachments     []string           `json:"attachments"`
	Items           []OrderItemRequest `json:"items"`
}

// CreateOrderResult is returned after a successful create.
type CreateOrderResult struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// --- OrderService Interface ---

type OrderService interface {
	CreateOrder(req SaveOrderRequest) (*CreateOrderResult, error)
	UpdateOrder(orderID int64, req SaveOrderRequest) error
	GetOrders() ([]models.OrderSummary, error)
	GetOrderByID(orderID int64) (*models.Order, error)
}

// --- orderService Implementation ---

type orderService struct {
	orderRepo repositories.OrderRepository
	db        *sql.DB // For managing transactions
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(or repositories.OrderRepository, db *sql.DB) OrderService {
	return &orderService{orderRepo: or, db: db}
}

// buildOrder coerces the request into a models.Order plus its items and runs
// the totals calculator.
func buildOrder(req SaveOrderRequest) (*models.Order, []*models.OrderItem) {
	items := make([]*models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		items = append(items, &models.OrderItem{
			Product:         itemReq.Product,
			SKU:             itemReq.SKU,
			Color:           itemReq.Color,
			Size:            itemReq.Size,
			Quantity:        utils.ToInt64Value(itemReq.Quantity),
			Cost:            utils.ToDecimal(itemReq.Cost),
			Price:           utils.ToDecimal(itemReq.Price),
			DiscountPercent: utils.ToDecimal(itemReq.DiscountPercent),
			Note:            itemReq.Note,
		})
	}

	discountPercent := utils.ToDecimal(req.DiscountPercent)
	extraCosts := utils.ToDecimal(req.ExtraCosts)
	totals := CalculateOrderTotals(items, discountPercent, extraCosts)

	order := &models.Order{
		Client:          req.Client,
		Status:          req.Status,
		Currency:        req.Currency,
		PaymentTerms:    req.PaymentTerms,
		PlannedStart:    req.PlannedStart,
		PlannedEnd:      req.PlannedEnd,
		ActualShip:      req.ActualShip,
		Logistics:       req.Logistics,
		DiscountPercent: discountPercent,
		ExtraCosts:      extraCosts,
		Folder:          req.Folder,
		Attachments:     req.Attachments,
		TotalSale:       totals.TotalSale,
		TotalCost:       totals.TotalCost,
		GrossProfit:     totals.GrossProfit,
	}
	return order, items
}

// generateOrderNumber produces ORD-YYYYMM-NNNN where NNNN is the 1-based
// sequence within the current calendar month. It must run on the transaction
// that inserts the order: the immediate write lock taken at BEGIN is what
// keeps concurrent creates from observing the same count.
func (s *orderService) generateOrderNumber(tx repositories.SQLExecutor, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%s", orderNumberPrefix, now.Format("200601"))
	count, err := s.orderRepo.CountOrdersByNumberPrefix(tx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to count orders for number generation: %w", err)
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}

// --- Method Implementations ---

func (s *orderService) CreateOrder(req SaveOrderRequest) (*CreateOrderResult, error) {
	order, items := buildOrder(req)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	order.OrderNumber, err = s.generateOrderNumber(tx, time.Now())
	if err != nil {
		return nil, err
	}

	orderID, err := s.orderRepo.CreateOrder(tx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}

	for _, item := range items {
		item.OrderID = orderID
		if _, err := s.orderRepo.CreateOrderItem(tx, item); err != nil {
			return nil, fmt.Errorf("failed to create order item (product: %s): %w", item.Product, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return &CreateOrderResult{OrderID: orderID, OrderNumber: order.OrderNumber}, nil
}

func (s *orderService) UpdateOrder(orderID int64, req SaveOrderRequest) error {
	order, items := buildOrder(req)
	order.ID = orderID

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateOrder(tx, order); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order record: %w", err)
	}

	// Full-replace semantics: drop every existing item and reinsert the
	// submitted set inside the same transaction.
	if _, err := s.orderRepo.DeleteOrderItemsByOrderID(tx, orderID); err != nil {
		return fmt.Errorf("failed to delete previous order items: %w", err)
	}
	for _, item := range items {
		item.OrderID = orderID
		if _, err := s.orderRepo.CreateOrderItem(tx, item); err != nil {
			return fmt.Errorf("failed to create order item (product: %s): %w", item.Product, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return nil
}

func (s *orderService) GetOrders() ([]models.OrderSummary, error) {
	orders, err := s.orderRepo.GetOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for order %d: %w", orderID, err)
	}
	order.OrderItems = items
	return order, nil
}
