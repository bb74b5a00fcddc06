package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shutterhub/backend/internal/catalog"
	"github.com/shutterhub/backend/internal/middleware"
	"github.com/shutterhub/backend/internal/models"
	"github.com/shutterhub/backend/internal/services"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	router   chi.Router
	users    services.UserService
	products services.ProductService
	orders   services.OrderService
}

// envelope mirrors models.APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// newTestEnv wires the memory services into the same route tree the server
// mounts.
func newTestEnv(t *testing.T, allowAdminBootstrap bool) *testEnv {
	t.Helper()

	users := services.NewMemoryUserService()
	products := services.NewMemoryProductService()
	orders := services.NewMemoryOrderService(users, products)
	engine := catalog.NewEngine(catalog.DefaultTaxonomy())

	authHandler := NewAuthHandler(users, testJWTSecret, time.Hour, allowAdminBootstrap)
	productHandler := NewProductHandler(products)
	catalogHandler := NewCatalogHandler(products, engine)
	quoteHandler := NewQuoteHandler(products, "919940423791")
	orderHandler := NewOrderHandler(orders, products)
	analyticsHandler := NewAnalyticsHandler(products, users, orders)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/create-admin", authHandler.CreateAdmin)
		r.Post("/login", authHandler.Login)

		r.Get("/products", productHandler.ListAvailable)
		r.Get("/category", productHandler.Categories)
		r.Get("/catalog", catalogHandler.Browse)
		r.Get("/catalog/facets", catalogHandler.Facets)
		r.Post("/quote", quoteHandler.CreateQuote)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(testJWTSecret))

			r.Get("/profile", authHandler.GetProfile)
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderHandler.Create)
				r.Get("/", orderHandler.ListMine)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/customers", authHandler.ListCustomers)
				r.Get("/analytics", analyticsHandler.Summary)
				r.Route("/products", func(r chi.Router) {
					r.Get("/", productHandler.AdminList)
					r.Post("/", productHandler.Create)
					r.Put("/{productId}", productHandler.Update)
					r.Delete("/{productId}", productHandler.Delete)
				})
				r.Get("/orders", orderHandler.AdminList)
				r.Put("/orders/{orderId}/status", orderHandler.UpdateStatus)
			})
		})
	})

	return &testEnv{router: r, users: users, products: products, orders: orders}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func (e *testEnv) registerClient(t *testing.T, email string) (string, models.User) {
	t.Helper()
	rec, env := e.do(t, http.MethodPost, "/api/register", "", models.RegisterRequest{
		Email:    email,
		Password: "secret123",
		Name:     "Test Client",
		Phone:    "9876543210",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var auth models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token, auth.User
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	rec, _ := e.do(t, http.MethodPost, "/api/create-admin", "", models.RegisterRequest{
		Email:    "admin@example.com",
		Password: "secret123",
		Name:     "Admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := e.do(t, http.MethodPost, "/api/login", "", models.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var auth models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	return auth.Token
}

func (e *testEnv) seedProduct(t *testing.T, name, category, brand string, price float64) *models.Product {
	t.Helper()
	p, err := e.products.Create(&models.CreateProductRequest{
		Name:     name,
		Price:    price,
		Category: category,
		Brand:    brand,
		Stock:    1,
	})
	require.NoError(t, err)
	return p
}

func TestAuthRoutes(t *testing.T) {
	t.Run("register issues a client token", func(t *testing.T) {
		env := newTestEnv(t, true)
		token, user := env.registerClient(t, "a@example.com")

		assert.NotEmpty(t, token)
		assert.Equal(t, models.RoleClient, user.Role)

		rec, profile := env.do(t, http.MethodGet, "/api/profile", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, profile.Success)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.registerClient(t, "a@example.com")

		rec, resp := env.do(t, http.MethodPost, "/api/register", "", models.RegisterRequest{
			Email:    "a@example.com",
			Password: "secret123",
			Name:     "Again",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, resp.Success)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		env := newTestEnv(t, true)
		rec, resp := env.do(t, http.MethodPost, "/api/register", "", models.RegisterRequest{
			Email:    "a@example.com",
			Password: "abc",
			Name:     "Short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, resp.Errors, "password")
	})

	t.Run("login rejects wrong password", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.registerClient(t, "a@example.com")

		rec, _ := env.do(t, http.MethodPost, "/api/login", "", models.LoginRequest{
			Email:    "a@example.com",
			Password: "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin bootstrap can be disabled", func(t *testing.T) {
		env := newTestEnv(t, false)
		rec, _ := env.do(t, http.MethodPost, "/api/create-admin", "", models.RegisterRequest{
			Email:    "admin@example.com",
			Password: "secret123",
			Name:     "Admin",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin routes gated by role", func(t *testing.T) {
		env := newTestEnv(t, true)
		clientToken, _ := env.registerClient(t, "client@example.com")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products/", nil)
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec2, _ := env.do(t, http.MethodGet, "/api/admin/products/", clientToken, nil)
		assert.Equal(t, http.StatusForbidden, rec2.Code)

		rec3, _ := env.do(t, http.MethodGet, "/api/admin/products/", env.adminToken(t), nil)
		assert.Equal(t, http.StatusOK, rec3.Code)
	})
}

func TestProductRoutes(t *testing.T) {
	t.Run("admin create then public listing", func(t *testing.T) {
		env := newTestEnv(t, true)
		admin := env.adminToken(t)

		rec, created := env.do(t, http.MethodPost, "/api/admin/products/", admin, models.CreateProductRequest{
			Name:     "Canon EOS R5",
			Price:    4500,
			Category: "cameras",
			Brand:    "Canon",
			Stock:    2,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var product models.Product
		require.NoError(t, json.Unmarshal(created.Data, &product))
		require.NotEmpty(t, product.ID)

		rec, listed := env.do(t, http.MethodGet, "/api/products", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var products []models.Product
		require.NoError(t, json.Unmarshal(listed.Data, &products))
		require.Len(t, products, 1)
		assert.Equal(t, "Canon EOS R5", products[0].Name)
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		env := newTestEnv(t, true)
		admin := env.adminToken(t)

		rec, resp := env.do(t, http.MethodPost, "/api/admin/products/", admin, models.CreateProductRequest{
			Price: 100,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, resp.Errors, "name")
	})

	t.Run("rented products drop off the public listing", func(t *testing.T) {
		env := newTestEnv(t, true)
		admin := env.adminToken(t)
		p := env.seedProduct(t, "Sony A7 IV", "cameras", "Sony", 4000)

		rented := false
		rec, _ := env.do(t, http.MethodPut, "/api/admin/products/"+p.ID, admin, models.UpdateProductRequest{
			Name:        p.Name,
			Price:       p.Price,
			Category:    p.Category,
			IsAvailable: &rented,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		_, listed := env.do(t, http.MethodGet, "/api/products", "", nil)
		var products []models.Product
		require.NoError(t, json.Unmarshal(listed.Data, &products))
		assert.Empty(t, products)

		_, all := env.do(t, http.MethodGet, "/api/admin/products/", admin, nil)
		require.NoError(t, json.Unmarshal(all.Data, &products))
		assert.Len(t, products, 1)
	})

	t.Run("delete", func(t *testing.T) {
		env := newTestEnv(t, true)
		admin := env.adminToken(t)
		p := env.seedProduct(t, "Nikon D850", "cameras", "Nikon", 3500)

		rec, _ := env.do(t, http.MethodDelete, "/api/admin/products/"+p.ID, admin, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = env.do(t, http.MethodDelete, "/api/admin/products/"+p.ID, admin, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("category listing", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.seedProduct(t, "A", "lens", "Sigma", 100)
		env.seedProduct(t, "B", "cameras", "Canon", 200)

		rec, resp := env.do(t, http.MethodGet, "/api/category", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var categories []string
		require.NoError(t, json.Unmarshal(resp.Data, &categories))
		assert.Equal(t, []string{"cameras", "lens"}, categories)
	})
}

func TestCatalogRoutes(t *testing.T) {
	seed := func(t *testing.T) *testEnv {
		env := newTestEnv(t, true)
		env.seedProduct(t, "Canon EOS R5", "cameras", "Canon", 4500)
		env.seedProduct(t, "Sony A7 IV", "cameras", "Sony", 4000)
		env.seedProduct(t, "Sigma 24-70mm", "lens", "Sigma", 1200)
		return env
	}

	browse := func(t *testing.T, env *testEnv, query string) []models.Product {
		t.Helper()
		rec, resp := env.do(t, http.MethodGet, "/api/catalog"+query, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var products []models.Product
		require.NoError(t, json.Unmarshal(resp.Data, &products))
		return products
	}

	t.Run("unfiltered browse returns everything", func(t *testing.T) {
		env := seed(t)
		assert.Len(t, browse(t, env, ""), 3)
	})

	t.Run("category filter", func(t *testing.T) {
		env := seed(t)
		products := browse(t, env, "?category=Lens")
		require.Len(t, products, 1)
		assert.Equal(t, "Sigma 24-70mm", products[0].Name)
	})

	t.Run("brand filter is case-sensitive", func(t *testing.T) {
		env := seed(t)
		assert.Len(t, browse(t, env, "?brand=Sony"), 1)
		assert.Empty(t, browse(t, env, "?brand=sony"))
	})

	t.Run("search and sort combine", func(t *testing.T) {
		env := seed(t)
		products := browse(t, env, "?q=cameras&sort=price-asc")
		require.Len(t, products, 2)
		assert.Equal(t, "Sony A7 IV", products[0].Name)
		assert.Equal(t, "Canon EOS R5", products[1].Name)
	})

	t.Run("price range", func(t *testing.T) {
		env := seed(t)
		products := browse(t, env, "?minPrice=4000&maxPrice=4500")
		assert.Len(t, products, 2)
	})

	t.Run("facets payload", func(t *testing.T) {
		env := seed(t)
		rec, resp := env.do(t, http.MethodGet, "/api/catalog/facets", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var facets catalog.Facets
		require.NoError(t, json.Unmarshal(resp.Data, &facets))
		assert.Equal(t, []string{"All", "Canon", "Sigma", "Sony"}, facets.Brands)
		assert.Equal(t, catalog.PriceRange{Min: 1200, Max: 4500}, facets.PriceRange)
		require.NotEmpty(t, facets.Categories)
		assert.Equal(t, "All", facets.Categories[0].Name)
	})
}

func TestQuoteRoute(t *testing.T) {
	t.Run("quote with handoff link", func(t *testing.T) {
		env := newTestEnv(t, true)
		p := env.seedProduct(t, "Canon EOS R5", "cameras", "Canon", 1000)

		rec, resp := env.do(t, http.MethodPost, "/api/quote", "", QuoteRequest{
			ProductID:     p.ID,
			PickupDate:    "2026-08-10",
			ReturnDate:    "2026-08-13",
			CustomerName:  "Asha",
			CustomerPhone: "9876543210",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var quote QuoteResponse
		require.NoError(t, json.Unmarshal(resp.Data, &quote))
		assert.Equal(t, 3, quote.Quote.Days)
		assert.InDelta(t, 2550, quote.Quote.FinalTotal, 1e-9)
		assert.Equal(t, 2550.0, quote.FloorTotal)
		assert.Contains(t, quote.WhatsAppURL, "https://wa.me/919940423791?text=")
		assert.Contains(t, quote.Message, "Canon EOS R5")
	})

	t.Run("no customer details means no link", func(t *testing.T) {
		env := newTestEnv(t, true)
		p := env.seedProduct(t, "Canon EOS R5", "cameras", "Canon", 1000)

		rec, resp := env.do(t, http.MethodPost, "/api/quote", "", QuoteRequest{
			ProductID:  p.ID,
			PickupDate: "2026-08-10",
			ReturnDate: "2026-08-11",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var quote QuoteResponse
		require.NoError(t, json.Unmarshal(resp.Data, &quote))
		assert.Empty(t, quote.WhatsAppURL)
		assert.Empty(t, quote.Message)
	})

	t.Run("unknown product", func(t *testing.T) {
		env := newTestEnv(t, true)
		rec, _ := env.do(t, http.MethodPost, "/api/quote", "", QuoteRequest{
			ProductID:  "missing",
			PickupDate: "2026-08-10",
			ReturnDate: "2026-08-11",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		env := newTestEnv(t, true)
		p := env.seedProduct(t, "Canon EOS R5", "cameras", "Canon", 1000)

		rec, _ := env.do(t, http.MethodPost, "/api/quote", "", QuoteRequest{
			ProductID:  p.ID,
			PickupDate: "10-08-2026",
			ReturnDate: "2026-08-11",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderRoutes(t *testing.T) {
	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC)

	t.Run("create recomputes the total server-side", func(t *testing.T) {
		env := newTestEnv(t, true)
		token, _ := env.registerClient(t, "client@example.com")
		p := env.seedProduct(t, "Canon EOS R5", "cameras", "Canon", 1000)

		rec, resp := env.do(t, http.MethodPost, "/api/orders/", token, models.CreateOrderRequest{
			Lines:       []models.OrderLine{{ProductID: p.ID, Quantity: 2}},
			RentalStart: start,
			RentalEnd:   end,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var order models.Order
		require.NoError(t, json.Unmarshal(resp.Data, &order))
		// 2000/day for 3 days with the multi-day discount.
		assert.Equal(t, 5100.0, order.TotalPrice)
		assert.Equal(t, models.OrderStatusPending, order.Status)
	})

	t.Run("unknown product in a line", func(t *testing.T) {
		env := newTestEnv(t, true)
		token, _ := env.registerClient(t, "client@example.com")

		rec, resp := env.do(t, http.MethodPost, "/api/orders/", token, models.CreateOrderRequest{
			Lines:       []models.OrderLine{{ProductID: "missing", Quantity: 1}},
			RentalStart: start,
			RentalEnd:   end,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, resp.Error, "missing")
	})

	t.Run("validation failures", func(t *testing.T) {
		env := newTestEnv(t, true)
		token, _ := env.registerClient(t, "client@example.com")

		rec, resp := env.do(t, http.MethodPost, "/api/orders/", token, models.CreateOrderRequest{
			RentalStart: start,
			RentalEnd:   end,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, resp.Errors, "products")
	})

	t.Run("list mine only shows own orders", func(t *testing.T) {
		env := newTestEnv(t, true)
		p := env.seedProduct(t, "Canon EOS R5", "cameras", "Canon", 1000)

		mineToken, _ := env.registerClient(t, "mine@example.com")
		otherToken, _ := env.registerClient(t, "other@example.com")

		req := models.CreateOrderRequest{
			Lines:       []models.OrderLine{{ProductID: p.ID, Quantity: 1}},
			RentalStart: start,
			RentalEnd:   end,
		}
		rec, _ := env.do(t, http.MethodPost, "/api/orders/", mineToken, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		_, listed := env.do(t, http.MethodGet, "/api/orders/", mineToken, nil)
		var orders []models.Order
		require.NoError(t, json.Unmarshal(listed.Data, &orders))
		assert.Len(t, orders, 1)

		_, listed = env.do(t, http.MethodGet, "/api/orders/", otherToken, nil)
		require.NoError(t, json.Unmarshal(listed.Data, &orders))
		assert.Empty(t, orders)
	})

	t.Run("admin listing and status updates", func(t *testing.T) {
		env := newTestEnv(t, true)
		admin := env.adminToken(t)
		token, user := env.registerClient(t, "client@example.com")
		p := env.seedProduct(t, "Canon EOS R5", "cameras", "Canon", 1000)

		rec, created := env.do(t, http.MethodPost, "/api/orders/", token, models.CreateOrderRequest{
			Lines:       []models.OrderLine{{ProductID: p.ID, Quantity: 1}},
			RentalStart: start,
			RentalEnd:   end,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var order models.Order
		require.NoError(t, json.Unmarshal(created.Data, &order))

		rec, listed := env.do(t, http.MethodGet, "/api/admin/orders", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var details []models.OrderDetail
		require.NoError(t, json.Unmarshal(listed.Data, &details))
		require.Len(t, details, 1)
		require.NotNil(t, details[0].Customer)
		assert.Equal(t, user.Email, details[0].Customer.Email)

		rec, updated := env.do(t, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", admin, models.UpdateOrderStatusRequest{
			Status: models.OrderStatusConfirmed,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var confirmed models.Order
		require.NoError(t, json.Unmarshal(updated.Data, &confirmed))
		assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)

		rec, _ = env.do(t, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", admin, models.UpdateOrderStatusRequest{
			Status: "shipped",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomersAndAnalytics(t *testing.T) {
	env := newTestEnv(t, true)
	admin := env.adminToken(t)
	token, _ := env.registerClient(t, "client@example.com")
	p := env.seedProduct(t, "Canon EOS R5", "cameras", "Canon", 1000)

	rec, _ := env.do(t, http.MethodPost, "/api/orders/", token, models.CreateOrderRequest{
		Lines:       []models.OrderLine{{ProductID: p.ID, Quantity: 1}},
		RentalStart: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		RentalEnd:   time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("customer listing excludes the admin", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodGet, "/api/admin/customers", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var customers []models.User
		require.NoError(t, json.Unmarshal(resp.Data, &customers))
		require.Len(t, customers, 1)
		assert.Equal(t, "client@example.com", customers[0].Email)
	})

	t.Run("summary counts and revenue", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodGet, "/api/admin/analytics", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var summary AnalyticsSummary
		require.NoError(t, json.Unmarshal(resp.Data, &summary))
		assert.Equal(t, 1, summary.TotalProducts)
		assert.Equal(t, 1, summary.TotalCustomers)
		assert.Equal(t, 1, summary.TotalOrders)
		assert.Equal(t, 2000.0, summary.TotalRevenue)
		assert.Equal(t, 1, summary.OrdersByStatus[models.OrderStatusPending])
		require.Len(t, summary.TopCustomers, 1)
		assert.Equal(t, 2000.0, summary.TopCustomers[0].Spend)
	})
}
