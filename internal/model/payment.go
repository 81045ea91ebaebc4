package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a settled checkout. Immutable once written.
type Payment struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	Email          string      `json:"email" db:"email"`
	AmountCents    int64       `json:"amountCents" db:"amount_cents"`
	Currency       string      `json:"currency" db:"currency"`
	CartIDs        []uuid.UUID `json:"cartIds" db:"cart_ids"`
	TransactionRef string      `json:"transactionRef" db:"transaction_ref"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
}

// CheckoutRequest represents the request payload for settling cart items.
// AmountCents is the client's expected total in minor currency units and is
// validated against the stored cart prices before any charge is made.
type CheckoutRequest struct {
	AmountCents int64       `json:"amountCents"`
	CartIDs     []uuid.UUID `json:"cartIds"`
}

// CheckoutResponse reports both halves of a completed checkout: the payment
// record that was written and how many cart lines were cleared.
type CheckoutResponse struct {
	PaymentID      uuid.UUID `json:"paymentId"`
	TransactionRef string    `json:"transactionRef"`
	DeletedCount   int64     `json:"deletedCount"`
}

// PaymentIntentRequest represents the request payload for creating a payment
// intent. Price is in major currency units (dollars).
type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

// PaymentIntentResponse carries the gateway client secret back to the caller.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
