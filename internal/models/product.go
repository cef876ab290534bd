package models

import "time"

// Product categories recognized by the catalog.
const (
	CategoryPatches = "patches"
	CategoryStrips  = "strips"
	CategoryMasks   = "masks"
	CategoryOther   = "other"
)

// ColorOption is a selectable product color.
type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// SizeOption is a selectable product size with its physical dimensions.
type SizeOption struct {
	Name       string     `json:"name"`
	Dimensions Dimensions `json:"dimensions"`
}

// Dimensions are expressed in millimeters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Product represents a product in the catalog.
type Product struct {
	ID          string        `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string        `json:"name" validate:"required,min=3,max=100"`
	Description string        `json:"description" validate:"required,max=1000"`
	Price       float64       `json:"price" validate:"gte=0"`
	Category    string        `json:"category" validate:"required,oneof=patches strips masks other"`
	Images      []string      `json:"images" gorm:"serializer:json"`
	ARModel     string        `json:"arModel"`
	Colors      []ColorOption `json:"colors" gorm:"serializer:json"`
	Sizes       []SizeOption  `json:"sizes" gorm:"serializer:json"`
	Stock       int           `json:"stock" validate:"gte=0"`
	Rating      float64       `json:"rating" validate:"gte=0,lte=5"`
	NumReviews  int           `json:"numReviews"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// HasColor reports whether name is one of the product's color options.
func (p *Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

// HasSize reports whether name is one of the product's size options.
func (p *Product) HasSize(name string) bool {
	for _, s := range p.Sizes {
		if s.Name == name {
			return true
		}
	}
	return false
}
