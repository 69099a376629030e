package payment

import (
	"context"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// default messages stored when the gateway gives none
const (
	MessageConfirmed = "payment confirmed"
	MessageFailed    = "payment confirmation failed"
)

type PaymentUseCaseImpl struct {
	Gateway           Gateway
	PaymentRepository PaymentRepository
	Enroller          Enroller
}

var _ PaymentUseCase = &PaymentUseCaseImpl{}

func NewPaymentUseCase(Gateway Gateway, PaymentRepository PaymentRepository, Enroller Enroller) *PaymentUseCaseImpl {
	return &PaymentUseCaseImpl{Gateway, PaymentRepository, Enroller}
}

// Confirm approves the payment at the gateway and records the outcome. Bookkeeping failures
// are logged, the gateway answer is always returned once the gateway was reached.
func (pu *PaymentUseCaseImpl) Confirm(ctx context.Context, req *ConfirmRequest) (*GatewayResult, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "PaymentUseCaseImpl.Confirm", "service")
	defer apmSpan.End()

	if err := domain.Required("paymentKey", req.PaymentKey, "orderId", req.OrderID); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, domain.NewArgumentError("amount", "amount is required")
	}

	result, err := pu.Gateway.Confirm(ctx, req)
	if err != nil {
		return nil, err
	}

	logger := logging.ExtractLoggerFromContext(ctx).With(zap.String("payment.order_id", req.OrderID))
	payment := &Payment{
		PaymentKey: req.PaymentKey,
		OrderID:    req.OrderID,
		Amount:     req.Amount,
		UserID:     req.UserID,
		CourseID:   req.CourseID,
	}
	if result.OK() {
		payment.Status, payment.Message = StatusSuccess, MessageConfirmed
	} else {
		payment.Status, payment.Message = StatusFailed, result.Message
		if payment.Message == "" {
			payment.Message = MessageFailed
		}
		logger.Warn("payment confirmation rejected", zap.Int("gateway.status", result.Status), zap.String("gateway.message", result.Message))
	}
	if err := pu.PaymentRepository.SavePayment(ctx, payment); err != nil {
		logger.Error("failed to save payment", zap.Error(err))
		apm.CaptureError(ctx, err).Send()
	}

	if result.OK() && req.UserID != "" && req.CourseID != "" {
		if _, err := pu.Enroller.Enroll(ctx, req.UserID, req.CourseID); err != nil {
			logger.Error("failed to enroll after payment", zap.String("user.id", req.UserID),
				zap.String("course.id", req.CourseID), zap.Error(err))
			apm.CaptureError(ctx, err).Send()
		}
	}
	return result, nil
}
