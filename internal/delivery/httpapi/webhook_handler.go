package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/provider"
	orderdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/order"
)

const signatureHeader = "X-Melo-Signature"

// providerEvent is the provider's webhook envelope. Payment events carry the
// order reference in metadata; payout events carry the provider payout id.
type providerEvent struct {
	Type string `json:"type"`
	Data struct {
		SessionID     string `json:"session_id"`
		ChargeID      string `json:"charge_id"`
		PayoutID      string `json:"payout_id"`
		Amount        int64  `json:"amount"`
		Currency      string `json:"currency"`
		FailureReason string `json:"failure_reason"`
		Metadata      struct {
			OrderID string `json:"order_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// handleProviderWebhook verifies the HMAC signature over the raw body before
// trusting a single byte of the payload. A 200 tells the provider to stop
// retrying; anything else triggers redelivery, so failures that cannot be
// fixed by a retry are still acked.
func (s *Server) handleProviderWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "unreadable body")
		return
	}
	if err := provider.VerifySignature(s.webhookSecret, body, r.Header.Get(signatureHeader)); err != nil {
		writeError(w, err)
		return
	}

	var event providerEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	switch event.Type {
	case "payment.succeeded", "checkout.completed":
		err = s.orderUC.HandlePaymentSucceeded(r.Context(), &orderdto.PaymentSucceededInput{
			OrderID:   event.Data.Metadata.OrderID,
			Amount:    event.Data.Amount,
			Currency:  event.Data.Currency,
			SessionID: event.Data.SessionID,
			ChargeID:  event.Data.ChargeID,
		})
	case "payout.paid":
		err = s.payoutUC.CompletePayout(r.Context(), event.Data.PayoutID)
		if errors.Is(err, domain.ErrPayoutNotFound) {
			// Test-mode and foreign payouts are acked, same as unknown orders.
			slog.Info("acking payout event for unknown payout", "payout_id", event.Data.PayoutID)
			err = nil
		}
	case "payout.failed":
		err = s.payoutUC.FailPayout(r.Context(), event.Data.PayoutID, event.Data.FailureReason)
		if errors.Is(err, domain.ErrPayoutNotFound) {
			slog.Info("acking payout event for unknown payout", "payout_id", event.Data.PayoutID)
			err = nil
		}
	default:
		// Subscription and other unrelated event families are acked so the
		// provider does not retry them forever.
		slog.Info("ignoring unhandled webhook event", "type", event.Type)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
}
