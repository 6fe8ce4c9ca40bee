package render

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
	"github.com/dkozyrev/sneakershop/internal/service"
)

func TestNew_ParsesAllTemplates(t *testing.T) {
	_, err := New(logger.New(0))
	require.NoError(t, err)
}

func TestRenderer_Page_CartTotals(t *testing.T) {
	r, err := New(logger.New(0))
	require.NoError(t, err)

	order := model.Order{ID: uuid.New()}
	view := service.CartView{
		Order: order,
		Lines: []model.CartLine{
			{OrderLine: model.OrderLine{ID: uuid.New(), OrderID: order.ID, Quantity: 2, PriceCents: 1000}, ProductTitle: "Air Max"},
		},
		SubtotalCents: 2000,
		ShippingCents: 100,
		TotalCents:    2100,
	}

	rec := httptest.NewRecorder()
	r.Page(rec, "cart.html", view)

	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Air Max")
	assert.Contains(t, body, "Subtotal: 20.00")
	assert.Contains(t, body, "Shipping: 1.00")
	assert.Contains(t, body, "Total: 21.00")
	assert.Contains(t, body, "/close-order")
}

func TestRenderer_Page_EmptyCartHidesCheckout(t *testing.T) {
	r, err := New(logger.New(0))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Page(rec, "cart.html", service.CartView{})

	body := rec.Body.String()
	assert.Contains(t, body, "Your cart is empty.")
	assert.NotContains(t, body, "/close-order")
}

func TestRenderer_Page_UnknownTemplate(t *testing.T) {
	r, err := New(logger.New(0))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Page(rec, "missing.html", nil)

	assert.Equal(t, 500, rec.Code)
}
