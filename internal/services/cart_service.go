package services

import (
	"errors"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic for a shopper's cart. A cart is owned by
// exactly one authenticated shopper, so mutations need no locking here.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the shopper's cart, creating an empty one on first access.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	cart = &models.Cart{UserID: userID}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// AddItem adds quantity of a product to the cart. A line with the same
// product and an equal customization is incremented instead of duplicated.
// The requested total must not exceed the product's stock at add time.
func (s *CartService) AddItem(userID, productID string, quantity int, customization *models.Customization) (*models.Cart, error) {
	if quantity < 1 {
		return nil, models.NewValidationError("quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	if existing := findSelection(cart, productID, customization); existing != nil {
		if existing.Quantity+quantity > product.Stock {
			return nil, models.NewValidationError("insufficient stock for product %s", product.Name)
		}
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
		return s.cartRepo.GetByUserID(userID)
	}

	if quantity > product.Stock {
		return nil, models.NewValidationError("insufficient stock for product %s", product.Name)
	}
	item := &models.CartItem{
		CartID:        cart.ID,
		ProductID:     productID,
		Quantity:      quantity,
		Customization: customization,
	}
	if err := s.cartRepo.AddItem(item); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// UpdateItem replaces the quantity, and the customization if given, of an
// existing line. Quantity is not clamped to stock; the UI owns that check.
func (s *CartService) UpdateItem(userID, itemID string, quantity int, customization *models.Customization) (*models.Cart, error) {
	if quantity < 1 {
		return nil, models.NewValidationError("quantity must be at least 1")
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}
	item := cart.FindItem(itemID)
	if item == nil {
		return nil, models.ErrNotFound
	}

	item.Quantity = quantity
	if customization != nil {
		item.Customization = customization
	}
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(userID, itemID string) (*models.Cart, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if cart.FindItem(itemID) == nil {
		return nil, models.ErrNotFound
	}
	if err := s.cartRepo.RemoveItem(itemID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// Clear empties the cart unconditionally. Idempotent.
func (s *CartService) Clear(userID string) (*models.Cart, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Clear(cart.ID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

func findSelection(cart *models.Cart, productID string, customization *models.Customization) *models.CartItem {
	for idx := range cart.Items {
		if cart.Items[idx].SameSelection(productID, customization) {
			return &cart.Items[idx]
		}
	}
	return nil
}
