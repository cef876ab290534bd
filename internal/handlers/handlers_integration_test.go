package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

var dbCounter int64

// setupApp builds a Fiber app over an in-memory SQLite database with all
// handlers, services and middleware wired the way main does it.
func setupApp(t *testing.T) (*fiber.App, *repositories.GORMProductRepository) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// A distinct shared-cache DSN per setup keeps tests isolated.
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}, &models.Order{}))

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, cartRepo, nil)
	uploadService := services.NewUploadService(t.TempDir(), 1024*1024)

	app := fiber.New()
	auth := middleware.AuthRequired(authService)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api, auth)
	handlers.NewProductHandler(productService).RegisterRoutes(api, auth, adminOnly)
	handlers.NewCartHandler(cartService).RegisterRoutes(api, auth)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, auth, adminOnly)
	handlers.NewUploadHandler(uploadService).RegisterRoutes(api, auth)

	// Seed an admin account; registration can only create shoppers.
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&models.User{
		Name:     "Admin User",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}))

	return app, productRepo
}

func seedTestProduct(t *testing.T, repo *repositories.GORMProductRepository, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: "For testing purposes",
		Price:       price,
		Category:    models.CategoryPatches,
		Stock:       stock,
		IsActive:    true,
		Colors:      []models.ColorOption{{Name: "Pink", Hex: "#FFB6C1"}},
		Sizes:       []models.SizeOption{{Name: "Small", Dimensions: models.Dimensions{Width: 5, Height: 3}}},
	}
	require.NoError(t, repo.Create(product))
	return product
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	fields := make(map[string]json.RawMessage)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &fields), "body: %s", raw)
	}
	return resp, fields
}

func registerAndLogin(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return login(t, app, email, password)
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp, fields := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token string
	require.NoError(t, json.Unmarshal(fields["token"], &token))
	require.NotEmpty(t, token)
	return token
}

func decodeCart(t *testing.T, fields map[string]json.RawMessage) models.Cart {
	t.Helper()
	var cart models.Cart
	require.NoError(t, json.Unmarshal(fields["cart"], &cart))
	return cart
}

func decodeOrder(t *testing.T, fields map[string]json.RawMessage) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, json.Unmarshal(fields["order"], &order))
	return order
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	token := registerAndLogin(t, app, "Test User", "test@example.com", "password123")

	// Profile round trip.
	resp, fields := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.User
	require.NoError(t, json.Unmarshal(fields["user"], &user))
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)

	// Registration never grants admin, even if requested.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "password123",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sneakyToken := login(t, app, "sneaky@example.com", "password123")
	_, fields = doJSON(t, app, http.MethodGet, "/api/auth/me", sneakyToken, nil)
	require.NoError(t, json.Unmarshal(fields["user"], &user))
	assert.Equal(t, models.RoleUser, user.Role)

	// Wrong password.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Duplicate registration.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductListingAndRecommendations(t *testing.T) {
	app, productRepo := setupApp(t)
	patch := seedTestProduct(t, productRepo, "Hydrating Face Patch", 29.99, 50)
	seedTestProduct(t, productRepo, "Eye Contour Patches", 34.99, 42)

	// Public listing, no token needed.
	resp, fields := doJSON(t, app, http.MethodGet, "/api/products?category=patches", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	require.NoError(t, json.Unmarshal(fields["products"], &products))
	assert.Len(t, products, 2)

	// Name search.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/products?search=eye", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(fields["products"], &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Eye Contour Patches", products[0].Name)

	// Recommendations exclude the product itself.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/products/recommendations/"+patch.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recommendations []models.Product
	require.NoError(t, json.Unmarshal(fields["recommendations"], &recommendations))
	require.Len(t, recommendations, 1)
	assert.Equal(t, "Eye Contour Patches", recommendations[0].Name)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductAdminGate(t *testing.T) {
	app, _ := setupApp(t)
	userToken := registerAndLogin(t, app, "Test User", "test@example.com", "password123")
	adminToken := login(t, app, "admin@example.com", "admin123")

	newProduct := map[string]interface{}{
		"name":        "Neck & Chest Patch",
		"description": "Large silicone patch for neck and chest area.",
		"price":       39.99,
		"category":    "patches",
		"stock":       28,
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/products", userToken, newProduct)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, fields := doJSON(t, app, http.MethodPost, "/api/products", adminToken, newProduct)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	require.NoError(t, json.Unmarshal(fields["product"], &product))
	assert.NotEmpty(t, product.ID)
	assert.True(t, product.IsActive)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+product.ID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+product.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	app, productRepo := setupApp(t)
	product := seedTestProduct(t, productRepo, "Hydrating Face Patch", 29.99, 50)
	token := registerAndLogin(t, app, "Test User", "test@example.com", "password123")

	// First access creates an empty cart.
	resp, fields := doJSON(t, app, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart := decodeCart(t, fields)
	assert.Empty(t, cart.Items)

	// Add twice with the same customization: one merged line.
	addBody := map[string]interface{}{
		"productId":     product.ID,
		"quantity":      2,
		"customization": map[string]string{"color": "Pink", "size": "Small"},
	}
	resp, _ = doJSON(t, app, http.MethodPost, "/api/cart", token, addBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, fields = doJSON(t, app, http.MethodPost, "/api/cart", token, addBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart = decodeCart(t, fields)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, "Hydrating Face Patch", cart.Items[0].Product.Name)

	// A different customization gets its own line.
	resp, fields = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId":     product.ID,
		"quantity":      1,
		"customization": map[string]string{"color": "Blue", "size": "Small"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart = decodeCart(t, fields)
	assert.Len(t, cart.Items, 2)

	// Update quantity on the first line.
	resp, fields = doJSON(t, app, http.MethodPut, "/api/cart/"+cart.Items[0].ID, token, map[string]interface{}{
		"quantity": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart = decodeCart(t, fields)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Remove the second line.
	resp, fields = doJSON(t, app, http.MethodDelete, "/api/cart/"+cart.Items[1].ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart = decodeCart(t, fields)
	assert.Len(t, cart.Items, 1)

	// Unknown item id.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/cart/no-such-item", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Bad quantity.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": product.ID,
		"quantity":  0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Clear.
	resp, fields = doJSON(t, app, http.MethodDelete, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart = decodeCart(t, fields)
	assert.Empty(t, cart.Items)
}

func TestCheckoutFlow(t *testing.T) {
	app, productRepo := setupApp(t)
	patch := seedTestProduct(t, productRepo, "Face Patch", 30.00, 50)
	mask := seedTestProduct(t, productRepo, "Sleeping Mask", 45.00, 20)
	token := registerAndLogin(t, app, "Test User", "test@example.com", "password123")
	adminToken := login(t, app, "admin@example.com", "admin123")

	checkoutBody := map[string]interface{}{
		"shippingAddress": map[string]string{
			"address":    "Via Roma 1",
			"city":       "Milan",
			"postalCode": "20121",
			"country":    "Italy",
		},
		"paymentMethod": "credit_card",
	}

	// Checkout on an empty cart fails and creates no order.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", token, checkoutBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": patch.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": mask.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, fields := doJSON(t, app, http.MethodPost, "/api/orders", token, checkoutBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decodeOrder(t, fields)

	assert.Equal(t, 105.00, order.ItemsPrice)
	assert.Equal(t, 0.0, order.ShippingPrice)
	assert.Equal(t, 10.50, order.TaxPrice)
	assert.Equal(t, 115.50, order.TotalPrice)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	require.Len(t, order.OrderItems, 2)

	// The cart is empty after checkout.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeCart(t, fields).Items)

	// Listing shows the new order.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(fields["orders"], &orders))
	require.Len(t, orders, 1)

	// Pay once, then the transition is terminal.
	resp, fields = doJSON(t, app, http.MethodPut, "/api/orders/"+order.ID+"/pay", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	paid := decodeOrder(t, fields)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/orders/"+order.ID+"/pay", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Only admins may mark an order delivered.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/orders/"+order.ID+"/deliver", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, fields = doJSON(t, app, http.MethodPut, "/api/orders/"+order.ID+"/deliver", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	delivered := decodeOrder(t, fields)
	assert.True(t, delivered.IsDelivered)
	require.NotNil(t, delivered.DeliveredAt)

	// Another shopper cannot read the order.
	otherToken := registerAndLogin(t, app, "Other", "other@example.com", "password123")
	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/"+order.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
