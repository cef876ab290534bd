package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customization is an optional (color, size) selection on a cart line item.
// Two customizations are compared by value when merging cart lines.
type Customization struct {
	Color string `json:"color"`
	Size  string `json:"size"`
}

// CartItem is a single line in a shopper's cart. Product is preloaded
// read-only from the catalog; price lives on the product until checkout.
type CartItem struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID        string         `json:"-" gorm:"index;type:varchar(36)"`
	ProductID     string         `json:"productId" gorm:"type:varchar(36)"`
	Product       Product        `json:"product" gorm:"foreignKey:ProductID"`
	Quantity      int            `json:"quantity"`
	Customization *Customization `json:"customization,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// SameSelection reports whether the item refers to the same product with an
// equal customization. Used to merge instead of duplicating lines.
func (i *CartItem) SameSelection(productID string, customization *Customization) bool {
	if i.ProductID != productID {
		return false
	}
	if i.Customization == nil || customization == nil {
		return i.Customization == nil && customization == nil
	}
	return *i.Customization == *customization
}

// Cart holds the pending purchase selections of a single shopper.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FindItem returns the item with the given id, or nil.
func (c *Cart) FindItem(itemID string) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			return &c.Items[idx]
		}
	}
	return nil
}

// Subtotal sums price times quantity over all items. Returns 0 for an empty
// cart. Computed with decimal arithmetic to stay exact at cent precision.
func (c *Cart) Subtotal() float64 {
	total := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Float64()
	return f
}

// ItemCount sums the quantities of all items.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
