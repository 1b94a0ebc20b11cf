package billingserver_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCheckout(t *testing.T) {
	app := newTestApp(t)
	cookies := app.session(t, "owner@example.com")
	chai := app.createProduct(t, cookies, "Masala Chai", "Beverages", 25)
	samosa := app.createProduct(t, cookies, "Samosa", "Snacks", 15)

	rec := app.do(t, request{method: http.MethodGet, path: "/carts/front", cookies: cookies})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 0.0, decode[map[string]any](t, rec)["total"])

	for _, id := range []string{chai, chai, samosa} {
		rec = app.do(t, request{method: http.MethodPost, path: "/carts/front/items", cookies: cookies, body: map[string]string{"productId": id}})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	cart := decode[map[string]any](t, rec)
	assert.Equal(t, 65.0, cart["total"])
	assert.Equal(t, 3.0, cart["itemsCount"])

	rec = app.do(t, request{method: http.MethodPatch, path: "/carts/front/items/" + samosa, cookies: cookies, body: map[string]any{"quantity": 3, "paymentMethod": "online"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart = decode[map[string]any](t, rec)
	assert.Equal(t, 95.0, cart["total"])

	// a second register is independent
	rec = app.do(t, request{method: http.MethodPost, path: "/carts/back/items", cookies: cookies, body: map[string]string{"productId": chai}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25.0, decode[map[string]any](t, rec)["total"])

	rec = app.do(t, request{method: http.MethodPost, path: "/carts/front/checkout", cookies: cookies})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[map[string]any](t, rec)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, 95.0, result["total"])

	rec = app.do(t, request{method: http.MethodGet, path: "/carts/front", cookies: cookies})
	assert.Equal(t, 0.0, decode[map[string]any](t, rec)["itemsCount"])

	rec = app.do(t, request{method: http.MethodGet, path: "/orders", cookies: cookies})
	orders := decode[[]map[string]any](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, result["orderId"], orders[0]["id"])
	assert.Equal(t, "Mixed", orders[0]["payment_method"])

	rec = app.do(t, request{method: http.MethodPost, path: "/carts/front/checkout", cookies: cookies, body: map[string]string{"status": "paid"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No items to save", decode[map[string]any](t, rec)["error"])
}

func TestRegisterItemErrors(t *testing.T) {
	app := newTestApp(t)
	owner := app.session(t, "owner@example.com")
	intruder := app.session(t, "intruder@example.com")
	chai := app.createProduct(t, owner, "Masala Chai", "Beverages", 25)

	rec := app.do(t, request{method: http.MethodPost, path: "/carts/front/items", cookies: intruder, body: map[string]string{"productId": chai}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, request{method: http.MethodPost, path: "/carts/front/items", cookies: owner, body: map[string]string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, request{method: http.MethodDelete, path: "/carts/front/items/" + chai, cookies: owner})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, request{method: http.MethodGet, path: "/carts/bad%20name", cookies: owner})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, request{method: http.MethodPost, path: "/carts/front/items", cookies: owner, body: map[string]string{"productId": chai}})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, request{method: http.MethodDelete, path: "/carts/front", cookies: owner})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, request{method: http.MethodGet, path: "/carts/front", cookies: owner})
	assert.Equal(t, 0.0, decode[map[string]any](t, rec)["itemsCount"])
}
