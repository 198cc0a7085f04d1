package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/go-resty/resty/v2"
)

// Client talks to the payment provider's REST API. Refund and payout requests
// are never retried here: neither call is idempotent on the provider side, so
// retry policy belongs to the caller.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(apiKey).
			SetTimeout(15 * time.Second),
	}
}

type refundRequest struct {
	ChargeID string `json:"charge_id"`
	Amount   int64  `json:"amount"`
}

type refundResponse struct {
	RefundID string `json:"refund_id"`
	Status   string `json:"status"`
}

type payoutRequest struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

type payoutResponse struct {
	PayoutID string `json:"payout_id"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) Refund(ctx context.Context, chargeID string, amount int64) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(refundRequest{ChargeID: chargeID, Amount: amount}).
		Post("/v1/refunds")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderCallFailed, err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("%w: %s", domain.ErrProviderCallFailed, decodeError(resp.Body(), resp.StatusCode()))
	}

	var out refundResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%w: decoding refund response: %v", domain.ErrProviderCallFailed, err)
	}
	return out.RefundID, nil
}

func (c *Client) CreatePayout(ctx context.Context, userID string, amount int64, method domain.PayoutMethod) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payoutRequest{UserID: userID, Amount: amount, Method: string(method)}).
		Post("/v1/payouts")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderCallFailed, err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("%w: %s", domain.ErrProviderCallFailed, decodeError(resp.Body(), resp.StatusCode()))
	}

	var out payoutResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%w: decoding payout response: %v", domain.ErrProviderCallFailed, err)
	}
	return out.PayoutID, nil
}

func decodeError(body []byte, code int) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return fmt.Sprintf("provider responded %d", code)
}
