package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"shop-backend/internal/models"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedPayload = errors.New("malformed webhook payload")
	ErrUnavailable      = errors.New("payment gateway unavailable")
)

const EventCheckoutCompleted = "checkout.session.completed"

type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type Session struct {
	ID  string
	URL string
}

// Event is the subset of a provider webhook event the reconciliation flow
// consumes: the event type and the order id carried in session metadata.
type Event struct {
	Type    string
	OrderID string
}

type Config struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string

	// BaseURL overrides the provider endpoint; used by tests.
	BaseURL string
}

// StripeGateway wraps the Stripe SDK behind the shapes the checkout flow
// needs. The API key is injected here instead of being set on the package
// global, so two gateways with different credentials can coexist.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeGateway(cfg Config) *StripeGateway {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	backendCfg := &stripe.BackendConfig{HTTPClient: httpClient}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &StripeGateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
	}
}

// CreateCheckoutSession requests a hosted payment-mode checkout session with
// the order id attached as metadata. No local state is touched.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, order *models.Order, items []LineItem) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(it.UnitAmount),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
	}
	params.AddMetadata("order_id", order.ID.String())

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// ConstructEvent verifies the signature header against the webhook secret
// before any of the payload is parsed. A signed but unparseable completed
// session comes back as ErrMalformedPayload so the caller can tell it apart
// from a session that simply carries no metadata.
func (g *StripeGateway) ConstructEvent(payload []byte, sigHeader string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &Event{Type: string(event.Type)}
	if out.Type == EventCheckoutCompleted {
		var obj struct {
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		out.OrderID = obj.Metadata["order_id"]
	}
	return out, nil
}
