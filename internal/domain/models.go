package domain

type Product struct {
	ID          string  `db:"id"`
	SKU         string  `db:"sku"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	WaxType     string  `db:"wax_type"`
	Category    string  `db:"category"`
	Width       float64 `db:"width"`
	Height      float64 `db:"height"`
	Depth       float64 `db:"depth"`
	Weight      float64 `db:"weight"`
	Price       float64 `db:"price"`
	Active      bool    `db:"active"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

type Color struct {
	ID            string  `db:"id" json:"id"`
	ProductID     string  `db:"product_id" json:"-"`
	Name          string  `db:"name" json:"color_name"`
	Hex           string  `db:"hex" json:"color_hex"` // "#RRGGBB"
	Default       bool    `db:"is_default" json:"is_default"`
	PriceModifier float64 `db:"price_modifier" json:"price_modifier"` // 0.1 = +10%
}

type ProductImage struct {
	ID              string `db:"id"`
	ProductID       string `db:"product_id"`
	Filename        string `db:"filename"`
	PreviewFilename string `db:"preview_filename"`
	AltText         string `db:"alt_text"`
	SortOrder       int    `db:"sort_order"`
}

type Composition struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Image       string `db:"image"`
	Active      bool   `db:"active"`
	CreatedAt   string `db:"created_at"`
}

type Order struct {
	ID            string  `db:"id"`
	CustomerName  string  `db:"customer_name"`
	Phone         string  `db:"phone"`
	ContactMethod string  `db:"contact_method"` // phone | viber | telegram
	Address       string  `db:"address"`
	Comment       string  `db:"comment"`
	Total         float64 `db:"total"`
	Status        string  `db:"status"`
	CreatedAt     string  `db:"created_at"`
}

type OrderItem struct {
	ID        string  `db:"id"`
	OrderID   string  `db:"order_id"`
	ProductID string  `db:"product_id"`
	ColorID   *string `db:"color_id"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"`
}
