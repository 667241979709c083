package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitpal/splitpal/internal/models"
	"github.com/splitpal/splitpal/internal/payments"
)

type createOrderRequest struct {
	SettlementID string `json:"settlement_id"`
}

type createOrderResponse struct {
	payments.Order
	UPILink string `json:"upi_link,omitempty"`
}

// handleCreatePaymentOrder opens a payment order for an existing
// settlement. The settlement goes pending until the payment is verified;
// a UPI deep link is included when the receiver has a payment address.
func (s *Server) handleCreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SettlementID == "" {
		writeError(w, http.StatusBadRequest, "settlement_id is required")
		return
	}

	settlement, err := s.store.GetSettlement(r.Context(), req.SettlementID)
	if err != nil {
		writeStoreError(w, err, "settlement")
		return
	}

	if err := s.store.UpdateSettlementStatus(r.Context(), settlement.ID, models.SettlementPending); err != nil {
		writeStoreError(w, err, "settlement")
		return
	}

	order := s.gateway.CreateOrder(settlement.ID, settlement.Amount, "INR")

	resp := createOrderResponse{Order: order}
	receiver, err := s.store.GetMember(r.Context(), settlement.ReceiverID)
	if err == nil && receiver.PaymentAddress != "" {
		resp.UPILink = payments.UPILink(receiver.PaymentAddress, receiver.Name, settlement.Amount, "SplitPal settle-up")
	}

	slog.Info("Payment order created",
		"order_id", order.ID,
		"settlement_id", settlement.ID,
		"amount", settlement.Amount,
	)
	writeJSON(w, http.StatusCreated, resp)
}

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type verifyPaymentResponse struct {
	SettlementID string                  `json:"settlement_id"`
	Status       models.SettlementStatus `json:"status"`
}

// handleVerifyPayment checks the gateway signature and records the outcome
// on the settlement: completed on success, failed on a bad signature.
func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		writeError(w, http.StatusBadRequest, "order_id, payment_id and signature are required")
		return
	}

	order, err := s.gateway.Verify(req.OrderID, req.PaymentID, req.Signature)
	if errors.Is(err, payments.ErrUnknownOrder) {
		writeError(w, http.StatusNotFound, "payment order not found")
		return
	}
	if errors.Is(err, payments.ErrBadSignature) {
		if updErr := s.store.UpdateSettlementStatus(r.Context(), order.SettlementID, models.SettlementFailed); updErr != nil {
			slog.Error("Failed to mark settlement failed", "settlement_id", order.SettlementID, "error", updErr)
		}
		slog.Warn("Payment verification failed", "order_id", order.ID, "settlement_id", order.SettlementID)
		writeError(w, http.StatusBadRequest, "payment verification failed")
		return
	}

	if err := s.store.UpdateSettlementStatus(r.Context(), order.SettlementID, models.SettlementCompleted); err != nil {
		writeStoreError(w, err, "settlement")
		return
	}

	slog.Info("Payment verified", "order_id", order.ID, "settlement_id", order.SettlementID)
	writeJSON(w, http.StatusOK, verifyPaymentResponse{
		SettlementID: order.SettlementID,
		Status:       models.SettlementCompleted,
	})
}
