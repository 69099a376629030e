package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const confirmPath = "/v1/payments/confirm"

// TossGateway payment widget confirm API client
type TossGateway struct {
	client *resty.Client
}

var _ Gateway = &TossGateway{}

// NewTossGateway the secret key is sent as basic auth user with an empty password
func NewTossGateway(baseURL, secretKey string, timeout time.Duration) *TossGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(secretKey, "").
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &TossGateway{client}
}

func (tg *TossGateway) Confirm(ctx context.Context, req *ConfirmRequest) (*GatewayResult, error) {
	resp, err := tg.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"orderId":    req.OrderID,
			"amount":     req.Amount,
			"paymentKey": req.PaymentKey,
		}).
		Post(confirmPath)
	if err != nil {
		return nil, fmt.Errorf("failed to call payment gateway: %w", err)
	}

	result := &GatewayResult{Status: resp.StatusCode(), Body: resp.Body()}
	if !result.OK() {
		var failure struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(result.Body, &failure) == nil {
			result.Message = failure.Message
		}
	}
	return result, nil
}
