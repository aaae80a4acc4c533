package model

import "time"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	Status       string    `json:"status"`
	CategoryID   *int64    `json:"category_id,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductQuery binds GET /products query parameters.
type ProductQuery struct {
	Page     int    `form:"page"     validate:"omitempty,min=1"`
	Limit    int    `form:"limit"    validate:"omitempty,min=1,max=100"`
	Category *int64 `form:"category" validate:"omitempty,min=1"`
}
