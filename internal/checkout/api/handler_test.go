package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticket-store/internal/checkout"
	"ticket-store/internal/checkout/api"
	"ticket-store/internal/logger"
	"ticket-store/internal/models"
	"ticket-store/internal/order"
	"ticket-store/internal/order/coupon"
	"ticket-store/internal/order/db"
	"ticket-store/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type fixture struct {
	router *chi.Mux
	bunDB  *bun.DB
	orders *order.OrderService
}

func setup(t *testing.T) *fixture {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()
	for _, model := range []interface{}{
		(*models.Order)(nil),
		(*models.OrderItem)(nil),
		(*models.Customer)(nil),
		(*models.Attendee)(nil),
		(*models.OrderItemAttendee)(nil),
	} {
		require.NoError(t, bunDB.ResetModel(ctx, model))
	}
	t.Cleanup(func() { bunDB.Close() })

	log := logger.NewLogger()
	storeDB := &db.DB{Bun: bunDB}
	sessions := session.NewManager("test-signing-key", 20*time.Minute)
	orderService := order.NewOrderService(storeDB, coupon.NewEvaluator(storeDB), sessions, nil, log, "event-1")
	checkoutService := checkout.NewService(bunDB, log)

	r := chi.NewRouter()
	api.NewHandler(checkoutService, orderService, log).RegisterRoutes(r)
	return &fixture{router: r, bunDB: bunDB, orders: orderService}
}

func (f *fixture) seedOrderWithItem(t *testing.T) *models.Order {
	t.Helper()
	ctx := context.Background()

	o, err := f.orders.CreateOrder(ctx, "")
	require.NoError(t, err)
	_, err = f.orders.CreateOrderItem(ctx, o.ID, models.CartItem{ProductID: "product-a", Quantity: 1, Subtotal: 100000})
	require.NoError(t, err)
	return o
}

func TestCreateAttendeesLinksOrder(t *testing.T) {
	f := setup(t)
	o := f.seedOrderWithItem(t)

	body := `{"attendees":[{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.test","country":"Indonesia"}]}`
	req := httptest.NewRequest(http.MethodPost, "/attendees?id_orders="+o.ID, bytes.NewBufferString(body))
	req.Header.Set(session.HeaderName, o.SessionToken)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Attendees created and linked to order items successfully")

	var envelope struct {
		Data checkout.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.AttendeeIDs, 1)
	require.NotEmpty(t, envelope.Data.CustomerID)
}

func TestCreateAttendeesAcceptsSingleObject(t *testing.T) {
	f := setup(t)
	o := f.seedOrderWithItem(t)

	body := `{"first_name":"Ada","email":"ada@example.test"}`
	req := httptest.NewRequest(http.MethodPost, "/attendees?id_orders="+o.ID, bytes.NewBufferString(body))
	req.Header.Set(session.HeaderName, o.SessionToken)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateAttendeesRequiresSessionToken(t *testing.T) {
	f := setup(t)
	o := f.seedOrderWithItem(t)

	body := `{"first_name":"Ada","email":"ada@example.test"}`
	req := httptest.NewRequest(http.MethodPost, "/attendees?id_orders="+o.ID, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAttendeesValidationFailureIs400(t *testing.T) {
	f := setup(t)
	o := f.seedOrderWithItem(t)

	body := `{"first_name":"Ada","email":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/attendees?id_orders="+o.ID, bytes.NewBufferString(body))
	req.Header.Set(session.HeaderName, o.SessionToken)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCustomerRoundTrip(t *testing.T) {
	f := setup(t)
	o := f.seedOrderWithItem(t)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.test"}`
	req := httptest.NewRequest(http.MethodPost, "/attendees?id_orders="+o.ID, bytes.NewBufferString(body))
	req.Header.Set(session.HeaderName, o.SessionToken)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data checkout.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	req = httptest.NewRequest(http.MethodGet, "/customers?id_customers="+envelope.Data.CustomerID, nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var customer models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))
	assert.Equal(t, "Ada Lovelace", customer.BillingName)
}

func TestGetCustomerNotFound(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/customers?id_customers=missing", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
