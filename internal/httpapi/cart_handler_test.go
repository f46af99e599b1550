package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"madaba-market-be/internal/cart"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMirror keeps snapshots in a map, standing in for the carts table.
type fakeMirror struct {
	snaps map[string]cart.Snapshot
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{snaps: make(map[string]cart.Snapshot)}
}

func (f *fakeMirror) Upsert(_ context.Context, userID string, snap cart.Snapshot) error {
	f.snaps[userID] = snap
	return nil
}

func (f *fakeMirror) Fetch(_ context.Context, userID string) (*cart.Snapshot, time.Time, error) {
	snap, ok := f.snaps[userID]
	if !ok {
		return nil, time.Time{}, nil
	}
	return &snap, time.Now(), nil
}

func (f *fakeMirror) Delete(_ context.Context, userID string) error {
	delete(f.snaps, userID)
	return nil
}

func cartRouter(mirror cart.Mirror) chi.Router {
	r := chi.NewRouter()
	NewCartHandler(mirror).RegisterRoutes(r)
	return r
}

func TestCartHandler(t *testing.T) {
	t.Run("AnonymousGets401", func(t *testing.T) {
		w := doRequest(cartRouter(newFakeMirror()),
			httptest.NewRequest(http.MethodGet, "/api/cart", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("EmptyCartReadsAsEmptySnapshot", func(t *testing.T) {
		r := asIdentity(httptest.NewRequest(http.MethodGet, "/api/cart", nil), testCustomer)
		w := doRequest(cartRouter(newFakeMirror()), r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"items":[],"sellerId":null}`, w.Body.String())
	})

	t.Run("PutThenGetRoundTrip", func(t *testing.T) {
		mirror := newFakeMirror()
		router := cartRouter(mirror)

		body := `{
			"sellerId": "seller-1",
			"items": [
				{"product": {"id": "p-1", "sellerId": "seller-1", "price": 12.5}, "quantity": 2}
			]
		}`
		put := asIdentity(httptest.NewRequest(http.MethodPut, "/api/cart", strings.NewReader(body)), testCustomer)
		require.Equal(t, http.StatusOK, doRequest(router, put).Code)

		get := asIdentity(httptest.NewRequest(http.MethodGet, "/api/cart", nil), testCustomer)
		w := doRequest(router, get)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sellerId":"seller-1"`)
	})

	t.Run("MixedSellersRejected", func(t *testing.T) {
		body := `{
			"sellerId": "seller-1",
			"items": [
				{"product": {"id": "p-1", "sellerId": "seller-1"}, "quantity": 1},
				{"product": {"id": "p-2", "sellerId": "seller-2"}, "quantity": 1}
			]
		}`
		r := asIdentity(httptest.NewRequest(http.MethodPut, "/api/cart", strings.NewReader(body)), testCustomer)
		w := doRequest(cartRouter(newFakeMirror()), r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("LockWithoutItemsRejected", func(t *testing.T) {
		body := `{"sellerId": "seller-1", "items": []}`
		r := asIdentity(httptest.NewRequest(http.MethodPut, "/api/cart", strings.NewReader(body)), testCustomer)
		w := doRequest(cartRouter(newFakeMirror()), r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DeleteClears", func(t *testing.T) {
		mirror := newFakeMirror()
		mirror.snaps["cust-1"] = cart.Snapshot{}

		r := asIdentity(httptest.NewRequest(http.MethodDelete, "/api/cart", nil), testCustomer)
		w := doRequest(cartRouter(mirror), r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, mirror.snaps)
	})
}
