package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// seedCatalog populates an empty database with demo accounts and products so
// a fresh checkout can be walked end to end. Skipped when products exist.
func seedCatalog(userRepo repositories.UserRepository, productRepo repositories.ProductRepository) {
	if _, total, err := productRepo.List(repositories.ProductFilter{Limit: 1}); err != nil || total > 0 {
		return
	}

	users := []models.User{
		{Name: "Test User", Email: "test@example.com", Password: "password123", Role: models.RoleUser},
		{Name: "Admin User", Email: "admin@example.com", Password: "admin123", Role: models.RoleAdmin},
	}
	for i := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(users[i].Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing seed password for %s: %v", users[i].Email, err)
			continue
		}
		users[i].Password = string(hashed)
		if err := userRepo.Create(&users[i]); err != nil {
			log.Printf("Error seeding user %s: %v", users[i].Email, err)
		}
	}

	products := []models.Product{
		{
			Name:        "Hydrating Face Patch",
			Description: "Premium silicone face patch for deep hydration. Perfect for all skin types. Reusable and eco-friendly.",
			Price:       29.99,
			Category:    models.CategoryPatches,
			Images:      []string{"https://via.placeholder.com/400x400?text=Hydrating+Face+Patch"},
			Colors: []models.ColorOption{
				{Name: "Clear", Hex: "#FFFFFF"},
				{Name: "Pink", Hex: "#FFB6C1"},
				{Name: "Blue", Hex: "#87CEEB"},
			},
			Sizes: []models.SizeOption{
				{Name: "Small", Dimensions: models.Dimensions{Width: 5, Height: 3}},
				{Name: "Medium", Dimensions: models.Dimensions{Width: 7, Height: 4}},
				{Name: "Large", Dimensions: models.Dimensions{Width: 9, Height: 5}},
			},
			Stock:      50,
			Rating:     4.5,
			NumReviews: 23,
			IsActive:   true,
		},
		{
			Name:        "Anti-Wrinkle Forehead Strip",
			Description: "Silicone strip designed to reduce forehead wrinkles while you sleep. Clinically tested and dermatologist approved.",
			Price:       24.99,
			Category:    models.CategoryStrips,
			Images:      []string{"https://via.placeholder.com/400x400?text=Forehead+Strip"},
			Colors: []models.ColorOption{
				{Name: "Clear", Hex: "#FFFFFF"},
				{Name: "Nude", Hex: "#F5DEB3"},
			},
			Sizes: []models.SizeOption{
				{Name: "Standard", Dimensions: models.Dimensions{Width: 8, Height: 3}},
				{Name: "Wide", Dimensions: models.Dimensions{Width: 10, Height: 3}},
			},
			Stock:      35,
			Rating:     4.7,
			NumReviews: 45,
			IsActive:   true,
		},
		{
			Name:        "Eye Contour Patches (Pair)",
			Description: "Set of 2 silicone patches for under-eye area. Reduces dark circles and puffiness. Comfortable overnight wear.",
			Price:       34.99,
			Category:    models.CategoryPatches,
			Images:      []string{"https://via.placeholder.com/400x400?text=Eye+Patches"},
			Colors: []models.ColorOption{
				{Name: "Clear", Hex: "#FFFFFF"},
				{Name: "Lavender", Hex: "#E6E6FA"},
			},
			Sizes: []models.SizeOption{
				{Name: "One Size", Dimensions: models.Dimensions{Width: 6, Height: 2}},
			},
			Stock:      42,
			Rating:     4.8,
			NumReviews: 67,
			IsActive:   true,
		},
		{
			Name:        "Full Face Sleeping Mask",
			Description: "Innovative full-face silicone mask for overnight anti-aging treatment. Enhances skin elasticity and moisture retention.",
			Price:       49.99,
			Category:    models.CategoryMasks,
			Images:      []string{"https://via.placeholder.com/400x400?text=Face+Mask"},
			Colors: []models.ColorOption{
				{Name: "Clear", Hex: "#FFFFFF"},
				{Name: "Pink", Hex: "#FFB6C1"},
			},
			Sizes: []models.SizeOption{
				{Name: "Small", Dimensions: models.Dimensions{Width: 18, Height: 22}},
				{Name: "Medium", Dimensions: models.Dimensions{Width: 20, Height: 24}},
				{Name: "Large", Dimensions: models.Dimensions{Width: 22, Height: 26}},
			},
			Stock:      20,
			Rating:     4.6,
			NumReviews: 34,
			IsActive:   true,
		},
		{
			Name:        "Neck & Chest Patch",
			Description: "Large silicone patch for neck and chest area. Prevents and reduces wrinkles. Includes travel case.",
			Price:       39.99,
			Category:    models.CategoryPatches,
			Images:      []string{"https://via.placeholder.com/400x400?text=Neck+Patch"},
			Colors: []models.ColorOption{
				{Name: "Clear", Hex: "#FFFFFF"},
				{Name: "Beige", Hex: "#F5F5DC"},
			},
			Sizes: []models.SizeOption{
				{Name: "Standard", Dimensions: models.Dimensions{Width: 15, Height: 20}},
			},
			Stock:      28,
			Rating:     4.4,
			NumReviews: 19,
			IsActive:   true,
		},
		{
			Name:        "Smile Line Smoothing Strips",
			Description: "Set of targeted strips for smile lines and mouth area. Reduces appearance of fine lines around lips.",
			Price:       27.99,
			Category:    models.CategoryStrips,
			Images:      []string{"https://via.placeholder.com/400x400?text=Smile+Strips"},
			Colors: []models.ColorOption{
				{Name: "Clear", Hex: "#FFFFFF"},
			},
			Sizes: []models.SizeOption{
				{Name: "Small", Dimensions: models.Dimensions{Width: 4, Height: 6}},
				{Name: "Large", Dimensions: models.Dimensions{Width: 5, Height: 7}},
			},
			Stock:      45,
			Rating:     4.3,
			NumReviews: 28,
			IsActive:   true,
		},
	}

	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}
	log.Printf("Seeded %d products", len(products))
}
