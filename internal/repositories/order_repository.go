package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orders_backend/internal/models"
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// Order methods
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	UpdateOrder(executor SQLExecutor, order *models.Order) error
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrders() ([]models.OrderSummary, error)
	CountOrdersByNumberPrefix(executor SQLExecutor, prefix string) (int, error)

	// OrderItem methods
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error)
	DeleteOrderItemsByOrderID(executor SQLExecutor, orderID int64) (int64, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// --- Order Methods ---

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders
	            (order_number, client, status, currency, payment_terms,
	             planned_start, planned_end, actual_ship, logistics,
	             discount_percent, extra_costs, folder, attachments,
	             total_sale, total_cost, gross_profit, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	attachments, err := marshalAttachments(order.Attachments)
	if err != nil {
		return 0, fmt.Errorf("%w: encoding attachments: %v", ErrDatabaseError, err)
	}

	result, err := executor.Exec(query,
		order.OrderNumber, order.Client, order.Status, order.Currency, order.PaymentTerms,
		order.PlannedStart, order.PlannedEnd, order.ActualShip, order.Logistics,
		order.DiscountPercent, order.ExtraCosts, order.Folder, attachments,
		order.TotalSale, order.TotalCost, order.GrossProfit, order.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	order.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: getting inserted order ID: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) UpdateOrder(executor SQLExecutor, order *models.Order) error {
	query := `UPDATE orders SET
	            client = ?, status = ?, currency = ?, payment_terms = ?,
	            planned_start = ?, planned_end = ?, actual_ship = ?, logistics = ?,
	            discount_percent = ?, extra_costs = ?, folder = ?, attachments = ?,
	            total_sale = ?, total_cost = ?, gross_profit = ?
	          WHERE id = ?`

	attachments, err := marshalAttachments(order.Attachments)
	if err != nil {
		return fmt.Errorf("%w: encoding attachments: %v", ErrDatabaseError, err)
	}

	result, err := executor.Exec(query,
		order.Client, order.Status, order.Currency, order.PaymentTerms,
		order.PlannedStart, order.PlannedEnd, order.ActualShip, order.Logistics,
		order.DiscountPercent, order.ExtraCosts, order.Folder, attachments,
		order.TotalSale, order.TotalCost, order.GrossProfit,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating order ID %d: %v", ErrDatabaseError, order.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order update ID %d: %v", ErrDatabaseError, order.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	order := &models.Order{}
	var attachments string
	query := `SELECT id, order_number, client, status, currency, payment_terms,
	                 planned_start, planned_end, actual_ship, logistics,
	                 discount_percent, extra_costs, folder, attachments,
	                 total_sale, total_cost, gross_profit, created_at
	          FROM orders
	          WHERE id = ?`
	err := r.db.QueryRow(query, orderID).Scan(
		&order.ID, &order.OrderNumber, &order.Client, &order.Status, &order.Currency, &order.PaymentTerms,
		&order.PlannedStart, &order.PlannedEnd, &order.ActualShip, &order.Logistics,
		&order.DiscountPercent, &order.ExtraCosts, &order.Folder, &attachments,
		&order.TotalSale, &order.TotalCost, &order.GrossProfit, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	order.Attachments = unmarshalAttachments(attachments)
	return order, nil
}

func (r *orderRepository) GetOrders() ([]models.OrderSummary, error) {
	orders := []models.OrderSummary{}
	query := `SELECT id, order_number, client, status, currency,
	                 total_sale, gross_profit, created_at
	          FROM orders
	          ORDER BY id DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.OrderSummary
		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Client, &o.Status, &o.Currency,
			&o.TotalSale, &o.GrossProfit, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order summary: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) CountOrdersByNumberPrefix(executor SQLExecutor, prefix string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM orders WHERE order_number LIKE ?`
	err := executor.QueryRow(query, prefix+"%").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting orders with prefix %s: %v", ErrDatabaseError, prefix, err)
	}
	return count, nil
}

// --- OrderItem Methods ---

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_items
	            (order_id, product, sku, color, size, quantity,
	             cost, price, discount_percent, line_sale, line_cost, note)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := executor.Exec(query,
		item.OrderID, item.Product, item.SKU, item.Color, item.Size, item.Quantity,
		item.Cost, item.Price, item.DiscountPercent, item.LineSale, item.LineCost, item.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: getting inserted order item ID: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *orderRepository) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `SELECT id, order_id, product, sku, color, size, quantity,
	                 cost, price, discount_percent, line_sale, line_cost, note
	          FROM order_items
	          WHERE order_id = ?
	          ORDER BY id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.Product, &item.SKU, &item.Color, &item.Size, &item.Quantity,
			&item.Cost, &item.Price, &item.DiscountPercent, &item.LineSale, &item.LineCost, &item.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item for order ID %d: %v", ErrDatabaseError, orderID, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return items, nil
}

func (r *orderRepository) DeleteOrderItemsByOrderID(executor SQLExecutor, orderID int64) (int64, error) {
	query := `DELETE FROM order_items WHERE order_id = ?`
	result, err := executor.Exec(query, orderID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return rowsAffected, nil
}

// --- helpers ---

// Attachments are stored as a JSON array in a TEXT column.

func marshalAttachments(attachments []string) (string, error) {
	if attachments == nil {
		attachments = []string{}
	}
	encoded, err := json.Marshal(attachments)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func unmarshalAttachments(encoded string) []string {
	attachments := []string{}
	if encoded == "" {
		return attachments
	}
	if err := json.Unmarshal([]byte(encoded), &attachments); err != nil {
		// Legacy rows may hold a bare comma-separated string; fall back to it as one entry.
		return []string{encoded}
	}
	return attachments
}
