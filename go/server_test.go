package billingserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	billingserver "github.com/Rajeshrr07/EiliyaBill/go"
	catalogmemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/memory"
	catalogstorage "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/storage"
	catalogapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application"
	checkoutcatalog "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/catalog"
	checkoutmemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/memory"
	checkoutapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application"
	grocerymemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/memory"
	groceryapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application"
	ordermemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/memory"
	orderworkflows "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application"
	reportsources "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/adapters/sources"
	reportapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application"
	usermemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/memory"
	usertoken "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/token"
	userapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/application"
)

type testApp struct {
	router *gin.Engine
	health map[string]billingserver.HealthCheck
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := usertoken.NewJWTCodec("test-secret-0123456789abcdef")
	require.NoError(t, err)
	users := userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore(), codec)

	catalogRepo := catalogmemory.NewRepository()
	images := catalogstorage.NewLocalStore(t.TempDir(), "/uploads")
	catalog := catalogapp.NewService(catalogRepo, catalogapp.WithImageStore(images))

	orderRepo := ordermemory.NewRepository()
	orders := orderapp.NewService(orderRepo, orderapp.WithIdempotencyStore(ordermemory.NewIdempotencyStore()))
	workflows := orderworkflows.NewInlineOrderWorkflows(orders)

	reports := reportapp.NewService(reportsources.NewOrderSales(orderRepo),
		reportapp.WithCategoryLookup(reportsources.NewCatalogCategories(catalogRepo)))
	carts := checkoutapp.NewService(checkoutmemory.NewStore(), checkoutcatalog.NewProducts(catalog), workflows)
	groceries := groceryapp.NewService(grocerymemory.NewRepository())

	app := &testApp{health: map[string]billingserver.HealthCheck{
		"database": func(context.Context) error { return nil },
	}}
	handlers := billingserver.ApiHandleFunctions{
		Sessions:   users,
		AuthAPI:    billingserver.NewAuthAPI(users, billingserver.CookieConfig{}),
		ProductAPI: billingserver.NewProductAPI(catalog),
		OrderAPI:   billingserver.NewOrderAPI(orders, workflows, nil),
		ReportAPI:  billingserver.NewReportAPI(reports),
		CartAPI:    billingserver.NewCartAPI(carts),
		GroceryAPI: billingserver.NewGroceryAPI(groceries),
		HealthAPI:  billingserver.NewHealthAPI(app.health),
	}
	app.router = billingserver.NewRouterWithGinEngine(gin.New(), handlers)
	return app
}

type request struct {
	method  string
	path    string
	body    any
	cookies []*http.Cookie
	headers map[string]string
}

func (a *testApp) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	httpReq := httptest.NewRequest(req.method, req.path, body)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	for _, c := range req.cookies {
		httpReq.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httpReq)
	return rec
}

// session signs up a store owner and returns the login cookies.
func (a *testApp) session(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	rec := a.do(t, request{method: http.MethodPost, path: "/auth/signup", body: map[string]string{
		"firstName": "Asha", "lastName": "Rao", "storeName": "Corner Cafe", "email": email, "password": "secret-pass",
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = a.do(t, request{method: http.MethodPost, path: "/auth/login", body: map[string]string{
		"email": email, "password": "secret-pass",
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return rec.Result().Cookies()
}

func (a *testApp) createProduct(t *testing.T, cookies []*http.Cookie, name, category string, price float64) string {
	t.Helper()
	rec := a.do(t, request{method: http.MethodPost, path: "/products", cookies: cookies, body: map[string]any{
		"name": name, "category": category, "price": price, "stock": 10,
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)["id"].(string)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func multipartImage(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

var errDatabaseDown = errors.New("database unreachable")
