// Package billingserver is the gin transport of the billing API.
package billingserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Scoped routes run behind RequireOwner.
	Scoped bool
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	guard := RequireOwner(handleFunctions.Sessions)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if route.Scoped {
			handlers = []gin.HandlerFunc{guard, route.HandlerFunc}
		}
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	// Sessions resolves the auth cookie for scoped routes.
	Sessions SessionResolver

	AuthAPI    AuthAPI
	ProductAPI ProductAPI
	OrderAPI   OrderAPI
	ReportAPI  ReportAPI
	CartAPI    CartAPI
	GroceryAPI GroceryAPI
	HealthAPI  HealthAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Signup", http.MethodPost, "/auth/signup", handleFunctions.AuthAPI.Signup, false},
		{"Login", http.MethodPost, "/auth/login", handleFunctions.AuthAPI.Login, false},
		{"Logout", http.MethodPost, "/auth/logout", handleFunctions.AuthAPI.Logout, false},
		{"ForgotPassword", http.MethodPost, "/auth/forgot-password", handleFunctions.AuthAPI.ForgotPassword, false},
		{"Profile", http.MethodGet, "/auth/profile", handleFunctions.AuthAPI.Profile, true},

		{"ListProducts", http.MethodGet, "/products", handleFunctions.ProductAPI.ListProducts, true},
		{"CreateProduct", http.MethodPost, "/products", handleFunctions.ProductAPI.CreateProduct, true},
		{"UpdateProduct", http.MethodPut, "/products/:id", handleFunctions.ProductAPI.UpdateProduct, true},
		{"DeleteProduct", http.MethodDelete, "/products/:id", handleFunctions.ProductAPI.DeleteProduct, true},
		{"UploadProductImage", http.MethodPost, "/products/:id/image", handleFunctions.ProductAPI.UploadImage, true},

		{"ListOrders", http.MethodGet, "/orders", handleFunctions.OrderAPI.ListOrders, true},
		{"CommitOrder", http.MethodPost, "/orders", handleFunctions.OrderAPI.CommitOrder, true},
		{"PatchOrder", http.MethodPatch, "/orders", handleFunctions.OrderAPI.PatchOrder, true},
		{"DeleteOrder", http.MethodDelete, "/orders", handleFunctions.OrderAPI.DeleteOrder, true},

		{"DailySales", http.MethodGet, "/orders/daily", handleFunctions.ReportAPI.DailySales, true},
		{"TopProducts", http.MethodGet, "/orders/top-products", handleFunctions.ReportAPI.TopProducts, true},
		{"HourlySales", http.MethodGet, "/orders/hourly", handleFunctions.ReportAPI.HourlySales, true},
		{"SalesSummary", http.MethodGet, "/orders/summary", handleFunctions.ReportAPI.SalesSummary, true},
		{"CategoryRevenue", http.MethodGet, "/reports/categories", handleFunctions.ReportAPI.CategoryRevenue, true},

		{"GetCart", http.MethodGet, "/carts/:register", handleFunctions.CartAPI.GetCart, true},
		{"ClearCart", http.MethodDelete, "/carts/:register", handleFunctions.CartAPI.ClearCart, true},
		{"AddCartItem", http.MethodPost, "/carts/:register/items", handleFunctions.CartAPI.AddItem, true},
		{"UpdateCartItem", http.MethodPatch, "/carts/:register/items/:productId", handleFunctions.CartAPI.UpdateItem, true},
		{"RemoveCartItem", http.MethodDelete, "/carts/:register/items/:productId", handleFunctions.CartAPI.RemoveItem, true},
		{"CheckoutCart", http.MethodPost, "/carts/:register/checkout", handleFunctions.CartAPI.Checkout, true},

		{"ListGroceries", http.MethodGet, "/groceries", handleFunctions.GroceryAPI.ListGroceries, true},
		{"AddGroceries", http.MethodPost, "/groceries", handleFunctions.GroceryAPI.AddGroceries, true},
		{"UpdateGrocery", http.MethodPatch, "/groceries", handleFunctions.GroceryAPI.UpdateGrocery, true},
		{"DeleteGrocery", http.MethodDelete, "/groceries", handleFunctions.GroceryAPI.DeleteGrocery, true},
		{"GrocerySummary", http.MethodGet, "/groceries/summary", handleFunctions.GroceryAPI.GrocerySummary, true},

		{"Healthz", http.MethodGet, "/healthz", handleFunctions.HealthAPI.Healthz, false},
	}
}
