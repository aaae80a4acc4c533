package model

import "time"

type Order struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	Total         float64   `json:"total"`
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
	ItemsCount    int       `json:"items_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderQuery binds GET /orders query parameters.
type OrderQuery struct {
	Page   int    `form:"page"   validate:"omitempty,min=1"`
	Limit  int    `form:"limit"  validate:"omitempty,min=1,max=100"`
	Search string `form:"search" validate:"omitempty,max=100"`
}
