package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// Products embedded in returned items are resolved through the product
// repository handed in at construction, mirroring the GORM preload.
type MockCartRepository struct {
	carts    map[string]models.Cart     // keyed by user id
	items    map[string]models.CartItem // keyed by item id
	products ProductRepository
	mu       sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository(products ProductRepository) *MockCartRepository {
	return &MockCartRepository{
		carts:    make(map[string]models.Cart),
		items:    make(map[string]models.CartItem),
		products: products,
	}
}

// GetByUserID returns the shopper's cart with items in insertion order.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, models.ErrNotFound)
	}

	cart.Items = nil
	for _, item := range r.items {
		if item.CartID != cart.ID {
			continue
		}
		if r.products != nil {
			if product, err := r.products.GetByID(item.ProductID); err == nil {
				item.Product = *product
			}
		}
		cart.Items = append(cart.Items, item)
	}
	sort.Slice(cart.Items, func(i, j int) bool {
		return cart.Items[i].CreatedAt.Before(cart.Items[j].CreatedAt)
	})
	return &cart, nil
}

// Create creates a new empty cart for a shopper.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	cart.CreatedAt = time.Now()
	r.carts[cart.UserID] = *cart
	return nil
}

// AddItem appends a new line to a cart.
func (r *MockCartRepository) AddItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// UpdateItem saves quantity and customization of an existing line.
func (r *MockCartRepository) UpdateItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("cart item %s: %w", item.ID, models.ErrNotFound)
	}
	existing.Quantity = item.Quantity
	existing.Customization = item.Customization
	r.items[item.ID] = existing
	return nil
}

// RemoveItem deletes a line by its id.
func (r *MockCartRepository) RemoveItem(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}
	delete(r.items, itemID)
	return nil
}

// Clear removes every line from a cart. Idempotent.
func (r *MockCartRepository) Clear(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}
