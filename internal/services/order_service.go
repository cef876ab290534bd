package services

import (
	"errors"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// EventPublisher publishes order lifecycle events to the message broker.
// Satisfied by *rabbitmq.Client; may be nil when no broker is configured.
type EventPublisher interface {
	PublishOrderEvent(event string, payload interface{}) error
}

// OrderService handles business logic related to orders: pricing a cart
// snapshot at checkout and the one-shot paid/delivered transitions.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
	events      EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, cartRepo repositories.CartRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		events:      events,
	}
}

// Checkout prices the shopper's current cart and materializes an order from
// it. Product name and unit price are re-read from the catalog and frozen on
// the order, so later product changes do not touch past orders. The cart is
// cleared only after the order has been durably stored.
func (s *OrderService) Checkout(userID string, address models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("cart is empty")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.NewValidationError("cart is empty")
	}

	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID:     product.ID,
			Name:          product.Name,
			Quantity:      item.Quantity,
			Price:         product.Price,
			Customization: item.Customization,
		})
	}

	breakdown := ComputeBreakdown(orderItems)
	order := &models.Order{
		UserID:          userID,
		OrderItems:      orderItems,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      breakdown.Subtotal,
		ShippingPrice:   breakdown.ShippingPrice,
		TaxPrice:        breakdown.TaxPrice,
		TotalPrice:      breakdown.TotalPrice,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(cart.ID); err != nil {
		log.Printf("Warning: order %s created but cart %s not cleared: %v", order.ID, cart.ID, err)
	}

	s.publish("order.created", order)
	return order, nil
}

// ListOrders retrieves a shopper's orders.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetOrder retrieves an order. A shopper may only read their own orders;
// admins may read any.
func (s *OrderService) GetOrder(id, userID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !isAdmin {
		return nil, models.ErrNotFound
	}
	return order, nil
}

// MarkPaid flips isPaid false to true exactly once and records the time.
func (s *OrderService) MarkPaid(id, userID string, isAdmin bool) (*models.Order, error) {
	order, err := s.GetOrder(id, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, models.NewValidationError("order is already paid")
	}
	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	s.publish("order.paid", order)
	return order, nil
}

// MarkDelivered flips isDelivered false to true exactly once and records the
// time. Delivery does not require payment to have been confirmed first.
func (s *OrderService) MarkDelivered(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.IsDelivered {
		return nil, models.NewValidationError("order is already delivered")
	}
	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	s.publish("order.delivered", order)
	return order, nil
}

// publish sends an order event if a broker is configured. Event delivery is
// best effort: a broker failure never fails the order operation itself.
func (s *OrderService) publish(event string, order *models.Order) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"orderId": order.ID,
		"userId":  order.UserID,
		"total":   order.TotalPrice,
	}
	if err := s.events.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, order.ID, err)
	}
}
