package service

import "errors"

var (
	ErrValidation         = errors.New("validation")                  // 400
	ErrEmptyCart          = errors.New("cart is empty")               // 400
	ErrNotFound           = errors.New("not found")                   // 404
	ErrAlreadyProcessed   = errors.New("order already processed")     // 400
	ErrInvalidSignature   = errors.New("invalid webhook signature")   // 400
	ErrGatewayUnavailable = errors.New("payment gateway unavailable") // 502
)
