package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func orderRouter(svc order.Service) chi.Router {
	r := chi.NewRouter()
	NewOrderHandler(svc).RegisterRoutes(r)
	return r
}

var (
	testCustomer = &identity.Identity{UserID: "cust-1", Role: identity.RoleCustomer}
	testSeller   = &identity.Identity{UserID: "seller-1", Role: identity.RoleSeller}
)

const orderBody = `{
	"sellerId": "seller-1",
	"shippingAddress": "Madaba",
	"phone": "+962790000000",
	"items": [
		{"product": {"id": "p-1", "name": "Olive Oil", "price": 12.5}, "quantity": 2}
	]
}`

func TestOrderHandler_Create(t *testing.T) {
	t.Run("AnonymousGets401", func(t *testing.T) {
		svc := new(MockOrderService)
		r := httptest.NewRequest(http.MethodPost, "/api/orders/", strings.NewReader(orderBody))
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SellerGets403", func(t *testing.T) {
		svc := new(MockOrderService)
		r := asIdentity(httptest.NewRequest(http.MethodPost, "/api/orders/", strings.NewReader(orderBody)), testSeller)
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Create", mock.Anything, testCustomer, mock.MatchedBy(func(p order.CreateParams) bool {
			return p.CustomerID == "cust-1" &&
				p.SellerID == "seller-1" &&
				len(p.Items) == 1 &&
				p.Items[0].Price == 12.5 &&
				p.Items[0].Quantity == 2
		})).Return(&order.Order{ID: "o-1", Status: order.StatusPending}, nil)

		r := asIdentity(httptest.NewRequest(http.MethodPost, "/api/orders/", strings.NewReader(orderBody)), testCustomer)
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"o-1"`)
		svc.AssertExpectations(t)
	})

	t.Run("UnknownSellerGets404", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Create", mock.Anything, testCustomer, mock.Anything).
			Return(nil, order.ErrSellerNotFound)

		r := asIdentity(httptest.NewRequest(http.MethodPost, "/api/orders/", strings.NewReader(orderBody)), testCustomer)
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not found")
	})

	t.Run("MissingFieldsGets400", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Create", mock.Anything, testCustomer, mock.Anything).
			Return(nil, &order.MissingFieldsError{Fields: []string{"phone"}})

		r := asIdentity(httptest.NewRequest(http.MethodPost, "/api/orders/", strings.NewReader(`{"sellerId":"seller-1"}`)), testCustomer)
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "phone")
	})
}

func TestOrderHandler_Get(t *testing.T) {
	t.Run("ForeignOrderReads404", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Get", mock.Anything, testCustomer, "o-9").Return(nil, order.ErrOrderNotFound)

		r := asIdentity(httptest.NewRequest(http.MethodGet, "/api/orders/o-9", nil), testCustomer)
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Run("CustomerGets403", func(t *testing.T) {
		svc := new(MockOrderService)
		r := asIdentity(httptest.NewRequest(http.MethodPut, "/api/orders/o-1",
			strings.NewReader(`{"status":"processing"}`)), testCustomer)
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("SellerAdvances", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, testSeller, "o-1", order.StatusProcessing).
			Return(&order.Order{ID: "o-1", Status: order.StatusProcessing}, nil)

		r := asIdentity(httptest.NewRequest(http.MethodPut, "/api/orders/o-1",
			strings.NewReader(`{"status":"processing"}`)), testSeller)
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"processing"`)
	})

	t.Run("IllegalTransitionGets400", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, testSeller, "o-1", order.StatusDelivered).
			Return(nil, order.ErrInvalidTransition)

		r := asIdentity(httptest.NewRequest(http.MethodPut, "/api/orders/o-1",
			strings.NewReader(`{"status":"delivered"}`)), testSeller)
		w := doRequest(orderRouter(svc), r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
