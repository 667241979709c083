// Package payments implements the UPI payment confirmation flow: deep-link
// generation for settle-up buttons and a simulated gateway that issues
// payment orders and verifies their signatures. Real gateway settlement is
// out of scope; the simulated flow exists so that verified payments can
// flip a settlement's status, which feeds back into the next balance
// computation.
package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownOrder is returned when verifying an order that was never created.
	ErrUnknownOrder = errors.New("unknown payment order")
	// ErrBadSignature is returned when a verification signature does not match.
	ErrBadSignature = errors.New("payment signature mismatch")
)

// UPILink builds a upi://pay deep link for the given payee.
func UPILink(address, payeeName string, amount float64, note string) string {
	params := url.Values{}
	params.Set("pa", address)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	if note != "" {
		params.Set("tn", note)
	}
	return "upi://pay?" + params.Encode()
}

// Order is a pending payment order tied to one settlement.
type Order struct {
	ID           string  `json:"order_id"`
	SettlementID string  `json:"settlement_id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	CreatedAt    int64   `json:"created_at"`
}

// Gateway is an in-memory simulated payment gateway. Orders live only for
// the process lifetime; verification checks an HMAC signature over the
// order and payment IDs.
type Gateway struct {
	secret []byte

	mu     sync.Mutex
	orders map[string]Order
}

// NewGateway creates a gateway signing with the given secret.
func NewGateway(secret string) *Gateway {
	return &Gateway{
		secret: []byte(secret),
		orders: make(map[string]Order),
	}
}

// CreateOrder registers a payment order for a settlement.
func (g *Gateway) CreateOrder(settlementID string, amount float64, currency string) Order {
	order := Order{
		ID:           "order_" + uuid.New().String(),
		SettlementID: settlementID,
		Amount:       amount,
		Currency:     currency,
		CreatedAt:    time.Now().Unix(),
	}

	g.mu.Lock()
	g.orders[order.ID] = order
	g.mu.Unlock()
	return order
}

// Sign produces the signature a (simulated) gateway callback would carry.
func (g *Gateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a payment confirmation against its order and returns the
// order on success.
func (g *Gateway) Verify(orderID, paymentID, signature string) (Order, error) {
	g.mu.Lock()
	order, ok := g.orders[orderID]
	g.mu.Unlock()
	if !ok {
		return Order{}, ErrUnknownOrder
	}

	expected := g.Sign(orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return order, ErrBadSignature
	}
	return order, nil
}
