package transport

import "github.com/google/uuid"

type ErrorResponse struct {
	Error string `json:"error"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type DeleteCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type CheckoutSessionResponse struct {
	CheckoutURL string `json:"checkout_url"`
}
