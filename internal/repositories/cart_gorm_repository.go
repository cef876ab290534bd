package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByUserID retrieves the shopper's cart with items and their products
// preloaded, in insertion order.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.created_at ASC")
	}).Preload("Items.Product").First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, models.ErrNotFound)
		}
		return nil, models.NewUpstreamError("get cart", err)
	}
	return &cart, nil
}

// Create creates a new empty cart for a shopper.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return models.NewUpstreamError("create cart", err)
	}
	return nil
}

// AddItem appends a new line to a cart.
func (r *GORMCartRepository) AddItem(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Omit("Product").Create(item).Error; err != nil {
		return models.NewUpstreamError("add cart item", err)
	}
	return nil
}

// UpdateItem saves quantity and customization of an existing line.
func (r *GORMCartRepository) UpdateItem(item *models.CartItem) error {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		Select("quantity", "customization").
		Updates(models.CartItem{Quantity: item.Quantity, Customization: item.Customization})
	if res.Error != nil {
		return models.NewUpstreamError("update cart item", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", item.ID, models.ErrNotFound)
	}
	return nil
}

// RemoveItem deletes a line by its id.
func (r *GORMCartRepository) RemoveItem(itemID string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", itemID)
	if res.Error != nil {
		return models.NewUpstreamError("remove cart item", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}
	return nil
}

// Clear removes every line from a cart. Idempotent.
func (r *GORMCartRepository) Clear(cartID string) error {
	if err := r.db.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error; err != nil {
		return models.NewUpstreamError("clear cart", err)
	}
	return nil
}
