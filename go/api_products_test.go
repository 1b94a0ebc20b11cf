package billingserver_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductLifecycle(t *testing.T) {
	app := newTestApp(t)
	cookies := app.session(t, "owner@example.com")

	rec := app.do(t, request{method: http.MethodGet, path: "/products", cookies: cookies})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	id := app.createProduct(t, cookies, "Masala Chai", "Beverages", 25)

	rec = app.do(t, request{method: http.MethodPut, path: "/products/" + id, cookies: cookies, body: map[string]any{
		"price": 30, "status": "Low stock",
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, rec)
	assert.Equal(t, 30.0, updated["price"])
	assert.Equal(t, "Low-stock", updated["status"])
	assert.Equal(t, "Masala Chai", updated["name"])

	rec = app.do(t, request{method: http.MethodGet, path: "/products", cookies: cookies})
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])

	rec = app.do(t, request{method: http.MethodDelete, path: "/products/" + id, cookies: cookies})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, request{method: http.MethodDelete, path: "/products/" + id, cookies: cookies})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidationAndOwnership(t *testing.T) {
	app := newTestApp(t)
	owner := app.session(t, "owner@example.com")
	intruder := app.session(t, "intruder@example.com")

	rec := app.do(t, request{method: http.MethodPost, path: "/products", cookies: owner, body: map[string]any{
		"name": "Samosa", "price": 15,
	}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := app.createProduct(t, owner, "Samosa", "Snacks", 15)

	rec = app.do(t, request{method: http.MethodPut, path: "/products/" + id, cookies: intruder, body: map[string]any{"price": 1}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = app.do(t, request{method: http.MethodDelete, path: "/products/" + id, cookies: intruder})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, request{method: http.MethodGet, path: "/products", cookies: intruder})
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestProductImageUpload(t *testing.T) {
	app := newTestApp(t)
	cookies := app.session(t, "owner@example.com")
	id := app.createProduct(t, cookies, "Vada Pav", "Snacks", 20)

	body, contentType := multipartImage(t, "vada.PNG", "image/png", []byte("\x89PNG fake"))
	req := httptest.NewRequest(http.MethodPost, "/products/"+id+"/image", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	product := decode[map[string]any](t, rec)
	assert.True(t, strings.HasPrefix(product["image"].(string), "/uploads/products/"))
	assert.True(t, strings.HasSuffix(product["image"].(string), id+".png"))

	body, contentType = multipartImage(t, "notes.txt", "text/plain", []byte("hello"))
	req = httptest.NewRequest(http.MethodPost, "/products/"+id+"/image", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
