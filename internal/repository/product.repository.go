package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/pkg/database"
)

type ProductFilter struct {
	Page
	CategoryID *int64
}

type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]model.Product, int, error)
}

type productRepository struct {
	db database.Database
}

func NewProductRepository(db database.Database) ProductRepository {
	return &productRepository{db: db}
}

type listQuery struct {
	countSQL  string
	countArgs []any
	listSQL   string
	listArgs  []any
}

func buildProductQuery(d database.Dialect, f ProductFilter) listQuery {
	where := ""
	var args []any
	if f.CategoryID != nil {
		where = " WHERE p.category_id = ?"
		args = append(args, *f.CategoryID)
	}

	list := `SELECT p.id, p.name, p.sku, p.description, p.price, p.stock, p.status,
p.category_id, c.name AS category_name, p.created_at
FROM products p
LEFT JOIN categories c ON p.category_id = c.id` + where + `
ORDER BY p.created_at DESC, p.id DESC
LIMIT ? OFFSET ?`

	return listQuery{
		countSQL:  d.Rebind(`SELECT COUNT(*) FROM products p` + where),
		countArgs: args,
		listSQL:   d.Rebind(list),
		listArgs:  append(append([]any{}, args...), f.Limit, f.Offset()),
	}
}

func (r *productRepository) List(ctx context.Context, f ProductFilter) ([]model.Product, int, error) {
	q := buildProductQuery(r.db.Dialect(), f)
	reader := r.db.Reader()

	var total int
	if err := reader.QueryRowContext(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := reader.QueryContext(ctx, q.listSQL, q.listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0, f.Limit)
	for rows.Next() {
		var (
			p            model.Product
			description  sql.NullString
			categoryID   sql.NullInt64
			categoryName sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &description, &p.Price, &p.Stock, &p.Status,
			&categoryID, &categoryName, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}

		p.Description = description.String
		if categoryID.Valid {
			id := categoryID.Int64
			p.CategoryID = &id
		}
		if categoryName.Valid {
			name := categoryName.String
			p.CategoryName = &name
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return products, total, nil
}
