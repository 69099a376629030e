package payment

import (
	"context"
	"time"
)

// payment status
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Payment confirmation outcome as persisted
type Payment struct {
	ID         string    `json:"id"`
	PaymentKey string    `json:"payment_key"`
	OrderID    string    `json:"order_id"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ConfirmRequest payment widget callback payload
type ConfirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	UserID     string `json:"userId"`
	CourseID   string `json:"courseId"`
}

// GatewayResult raw gateway answer, relayed to the caller as is
type GatewayResult struct {
	Status  int
	Body    []byte
	Message string
}

// OK reports a 2xx gateway answer
func (gr *GatewayResult) OK() bool {
	return gr.Status >= 200 && gr.Status < 300
}

type Gateway interface {
	Confirm(ctx context.Context, req *ConfirmRequest) (*GatewayResult, error)
}

type PaymentRepository interface {
	SavePayment(ctx context.Context, payment *Payment) error
	ListPayments(ctx context.Context, orderID string) ([]*Payment, error)
}

// Enroller grants course access after a successful payment
type Enroller interface {
	Enroll(ctx context.Context, userID, courseID string) (bool, error)
}

type PaymentUseCase interface {
	Confirm(ctx context.Context, req *ConfirmRequest) (*GatewayResult, error)
}
