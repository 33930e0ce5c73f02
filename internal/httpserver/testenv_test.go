package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shop-backend/internal/models"
	"shop-backend/internal/payment"
	"shop-backend/internal/repo"
	"shop-backend/internal/service"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	Repo    *repo.GormRepo
	Gateway *stubGateway

	Cart     *CartHTTP
	Order    *OrderHTTP
	Checkout *CheckoutHTTP
}

// stubGateway answers checkout-session calls locally and delegates webhook
// verification to a real Stripe gateway so the signature path stays honest.
type stubGateway struct {
	verifier     *payment.StripeGateway
	sessionCalls int
	sessionErr   error
}

func (g *stubGateway) CreateCheckoutSession(ctx context.Context, order *models.Order, items []payment.LineItem) (*payment.Session, error) {
	g.sessionCalls++
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	return &payment.Session{ID: "cs_test_1", URL: "https://checkout.example.com/pay/cs_test_1"}, nil
}

func (g *stubGateway) ConstructEvent(payload []byte, sigHeader string) (*payment.Event, error) {
	return g.verifier.ConstructEvent(payload, sigHeader)
}

const testWebhookSecret = "whsec_test_secret"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate())

	gw := &stubGateway{
		verifier: payment.NewStripeGateway(payment.Config{WebhookSecret: testWebhookSecret}),
	}

	inventory := &service.InventoryService{Repo: r, LowStockThreshold: 5}

	env := &testEnv{
		T:       t,
		E:       echo.New(),
		Repo:    r,
		Gateway: gw,

		Cart:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		Order:    &OrderHTTP{Svc: &service.OrderService{Repo: r, Inventory: inventory}},
		Checkout: &CheckoutHTTP{Svc: &service.CheckoutService{Repo: r, Gateway: gw}},
	}
	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) asUser(c echo.Context, userID uuid.UUID) {
	c.Set("user_id", userID.String())
}

func (env *testEnv) createProduct(name string, price float64, stock uint) models.Product {
	env.T.Helper()

	p := models.Product{Name: name, Price: price, Active: true}
	require.NoError(env.T, env.Repo.DB.Create(&p).Error)
	require.NoError(env.T, env.Repo.DB.Create(&models.Inventory{ProductID: p.ID, Stock: stock}).Error)
	return p
}

func (env *testEnv) fillCart(userID uuid.UUID, items ...models.CartItem) {
	env.T.Helper()

	for i := range items {
		items[i].UserID = userID
		require.NoError(env.T, env.Repo.DB.Create(&items[i]).Error)
	}
}
