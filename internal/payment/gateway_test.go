package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test_sk_123"

// newGatewayServer fake gateway rejecting order ids starting with "reject"
func newGatewayServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, confirmPath, r.URL.Path)
		assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte(testSecretKey+":")), r.Header.Get("Authorization"))

		var body struct {
			OrderID    string `json:"orderId"`
			Amount     int64  `json:"amount"`
			PaymentKey string `json:"paymentKey"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		if len(body.OrderID) >= 6 && body.OrderID[:6] == "reject" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"REJECT_CARD_PAYMENT","message":"card rejected"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "DONE",
			"orderId":     body.OrderID,
			"totalAmount": body.Amount,
			"paymentKey":  body.PaymentKey,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTossGateway_Confirm(t *testing.T) {
	srv := newGatewayServer(t)
	gw := NewTossGateway(srv.URL, testSecretKey, time.Second)

	result, err := gw.Confirm(context.Background(), &ConfirmRequest{PaymentKey: "pk", OrderID: "order-1", Amount: 15000})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Empty(t, result.Message)
	assert.JSONEq(t, `{"status":"DONE","orderId":"order-1","totalAmount":15000,"paymentKey":"pk"}`, string(result.Body))
}

func TestTossGateway_Rejected(t *testing.T) {
	srv := newGatewayServer(t)
	gw := NewTossGateway(srv.URL, testSecretKey, time.Second)

	result, err := gw.Confirm(context.Background(), &ConfirmRequest{PaymentKey: "pk", OrderID: "reject-1", Amount: 15000})
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, "card rejected", result.Message)
}

func TestTossGateway_Unreachable(t *testing.T) {
	srv := newGatewayServer(t)
	srv.Close()

	_, err := NewTossGateway(srv.URL, testSecretKey, time.Second).
		Confirm(context.Background(), &ConfirmRequest{PaymentKey: "pk", OrderID: "order-1", Amount: 1})
	assert.Error(t, err)
}
