package repositories

import (
	"storefront/internal/models"
)

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	Recommendations(category, excludeID string, limit int) ([]models.Product, error)
}
