package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client calls the listing service to decrement stock after a confirmed
// purchase. The listing service deactivates sold-out listings itself.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(5 * time.Second),
	}
}

type decrementRequest struct {
	ListingID string `json:"listing_id"`
	Quantity  int32  `json:"quantity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) DecrementQuantity(ctx context.Context, listingID string, qty int32) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(decrementRequest{ListingID: listingID, Quantity: qty}).
		Post("/internal/listings/decrement")
	if err != nil {
		return err
	}

	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}

	var errResp errorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Error != "" {
		return errors.New(errResp.Error)
	}
	return fmt.Errorf("inventory service responded %d", resp.StatusCode())
}
