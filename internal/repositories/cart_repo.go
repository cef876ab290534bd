package repositories

import "storefront/internal/models"

// CartRepository defines the interface for cart data access. A shopper owns at
// most one cart; items are keyed by their own ids.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	AddItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	RemoveItem(itemID string) error
	Clear(cartID string) error
}
