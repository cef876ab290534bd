package models

import "time"

// OrderItem captures a product at order time: id, name, unit price and
// customization are frozen and stay unchanged even if the product changes later.
type OrderItem struct {
	ProductID     string         `json:"product"`
	Name          string         `json:"name"`
	Quantity      int            `json:"quantity"`
	Price         float64        `json:"price"`
	Customization *Customization `json:"customization,omitempty"`
}

// ShippingAddress is the destination of an order.
type ShippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Order is an immutable record created from a priced cart snapshot at
// checkout. Only the isPaid and isDelivered flags change after creation, and
// each flips false to true at most once.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"userId" gorm:"index;type:varchar(36)"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"serializer:json"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"serializer:json"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
