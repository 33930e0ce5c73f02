package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/models"
	"shop-backend/internal/payment"
)

func TestHandleWebhook_MarksOrderPaid(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	ctx := context.Background()

	order := models.Order{UserID: uuid.New(), Status: models.OrderStatusPending, Total: 25}
	require.NoError(t, r.DB.Create(&order).Error)

	gw := &fakeGateway{event: &payment.Event{
		Type:    payment.EventCheckoutCompleted,
		OrderID: order.ID.String(),
	}}
	svc := &CheckoutService{Repo: r, Gateway: gw, Producer: pub}

	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, got.Status)

	paid := pub.byType("order_paid")
	require.Len(t, paid, 1)
	assert.Equal(t, order.ID.String(), paid[0].Key)
}

func TestHandleWebhook_DuplicateDeliveryIsIdempotent(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	ctx := context.Background()

	order := models.Order{UserID: uuid.New(), Status: models.OrderStatusPending, Total: 25}
	require.NoError(t, r.DB.Create(&order).Error)

	gw := &fakeGateway{event: &payment.Event{
		Type:    payment.EventCheckoutCompleted,
		OrderID: order.ID.String(),
	}}
	svc := &CheckoutService{Repo: r, Gateway: gw, Producer: pub}

	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))
	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, got.Status)

	// The side effect happened exactly once.
	assert.Len(t, pub.byType("order_paid"), 1)
}

func TestHandleWebhook_UnknownOrderIsAcknowledged(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	gw := &fakeGateway{event: &payment.Event{
		Type:    payment.EventCheckoutCompleted,
		OrderID: uuid.NewString(),
	}}
	svc := &CheckoutService{Repo: r, Gateway: gw, Producer: pub}

	// No error back to the provider, but the miss is observable.
	require.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.Len(t, pub.byType("order_missing"), 1)
}

func TestHandleWebhook_MalformedOrderID(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	gw := &fakeGateway{event: &payment.Event{
		Type:    payment.EventCheckoutCompleted,
		OrderID: "not-a-uuid",
	}}
	svc := &CheckoutService{Repo: r, Gateway: gw, Producer: pub}

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.Len(t, pub.byType("order_missing"), 1)
}

func TestHandleWebhook_IgnoresOtherEventTypes(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	order := models.Order{UserID: uuid.New(), Status: models.OrderStatusPending, Total: 25}
	require.NoError(t, r.DB.Create(&order).Error)

	gw := &fakeGateway{event: &payment.Event{Type: "payment_intent.created"}}
	svc := &CheckoutService{Repo: r, Gateway: gw}

	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestHandleWebhook_MalformedPayloadAcknowledged(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	order := models.Order{UserID: uuid.New(), Status: models.OrderStatusPending, Total: 25}
	require.NoError(t, r.DB.Create(&order).Error)

	gw := &fakeGateway{eventErr: payment.ErrMalformedPayload}
	svc := &CheckoutService{Repo: r, Gateway: gw}

	// The signature checked out, so the provider gets a success; a retry
	// would deliver the same unparseable bytes.
	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	order := models.Order{UserID: uuid.New(), Status: models.OrderStatusPending, Total: 25}
	require.NoError(t, r.DB.Create(&order).Error)

	gw := &fakeGateway{eventErr: payment.ErrInvalidSignature}
	svc := &CheckoutService{Repo: r, Gateway: gw}

	err := svc.HandleWebhook(ctx, []byte(`{}`), "bad sig")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// Nothing was mutated.
	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}
