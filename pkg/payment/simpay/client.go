package simpay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApproveRequest represents the request parameters for an approval
type ApproveRequest struct {
	OrderNumber string
	Method      string
	Amount      int64
}

// ApproveResponse represents an approved transaction
type ApproveResponse struct {
	TID         string    `json:"tid"`
	MerchantID  string    `json:"merchant_id"`
	OrderNumber string    `json:"order_number"`
	Method      string    `json:"method"`
	Amount      int64     `json:"amount"`
	ApprovedAt  time.Time `json:"approved_at"`
}

// Client approves every well-formed payment after a fixed delay.
type Client struct {
	config Config
	now    func() time.Time
}

// NewClient creates a new simulated payment client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Client{config: config, now: time.Now}, nil
}

// Approve waits for the configured latency and approves the payment.
// Cancelling ctx aborts the wait.
func (c *Client) Approve(ctx context.Context, req ApproveRequest) (*ApproveResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.OrderNumber == "" {
		return nil, ErrInvalidRequest
	}

	if c.config.Latency > 0 {
		timer := time.NewTimer(c.config.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrPaymentCancelled, ctx.Err())
		case <-timer.C:
		}
	}

	return &ApproveResponse{
		TID:         "T" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:19],
		MerchantID:  c.config.MerchantID,
		OrderNumber: req.OrderNumber,
		Method:      req.Method,
		Amount:      req.Amount,
		ApprovedAt:  c.now(),
	}, nil
}
