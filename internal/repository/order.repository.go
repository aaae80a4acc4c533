package repository

import (
	"context"
	"fmt"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/pkg/database"
)

type OrderFilter struct {
	Page
	Search string
}

type OrderRepository interface {
	List(ctx context.Context, f OrderFilter) ([]model.Order, int, error)
}

type orderRepository struct {
	db database.Database
}

func NewOrderRepository(db database.Database) OrderRepository {
	return &orderRepository{db: db}
}

func buildOrderQuery(d database.Dialect, f OrderFilter) listQuery {
	where := ""
	var args []any
	if f.Search != "" {
		like := d.Like()
		where = " WHERE o.order_number " + like + " ? OR o.customer_name " + like + " ?"
		pattern := containsPattern(f.Search)
		args = append(args, pattern, pattern)
	}

	list := `SELECT o.id, o.order_number, o.customer_name, o.total, o.order_status, o.payment_status,
(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS items_count, o.created_at
FROM orders o` + where + `
ORDER BY o.created_at DESC, o.id DESC
LIMIT ? OFFSET ?`

	return listQuery{
		countSQL:  d.Rebind(`SELECT COUNT(*) FROM orders o` + where),
		countArgs: args,
		listSQL:   d.Rebind(list),
		listArgs:  append(append([]any{}, args...), f.Limit, f.Offset()),
	}
}

func (r *orderRepository) List(ctx context.Context, f OrderFilter) ([]model.Order, int, error) {
	q := buildOrderQuery(r.db.Dialect(), f)
	reader := r.db.Reader()

	var total int
	if err := reader.QueryRowContext(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows, err := reader.QueryContext(ctx, q.listSQL, q.listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0, f.Limit)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Total, &o.OrderStatus,
			&o.PaymentStatus, &o.ItemsCount, &o.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, total, nil
}
