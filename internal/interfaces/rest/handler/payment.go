package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/course-platform/internal/payment"
)

type PaymentHandler struct {
	PaymentUseCase payment.PaymentUseCase
}

func NewPaymentHandler(PaymentUseCase payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{PaymentUseCase}
}

// HandleConfirm relays the gateway answer with its status code
func (ph *PaymentHandler) HandleConfirm(c echo.Context) (err error) {
	req := new(payment.ConfirmRequest)
	if verr := bind(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, verr)
	}

	result, err := ph.PaymentUseCase.Confirm(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSONBlob(result.Status, result.Body)
}
