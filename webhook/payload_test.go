package webhook

import (
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetOutput(io.Discard)
}

func TestParsePayload(t *testing.T) {
	t.Run("Nested Order Shape", func(t *testing.T) {
		raw := `{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{"order":{"order_id":"oinr_1","order_amount":500.00},"payment":{"payment_status":"SUCCESS","payment_amount":500}}}`

		event, err := ParsePayload([]byte(raw))

		require.NoError(t, err)
		assert.Equal(t, "PAYMENT_SUCCESS_WEBHOOK", event.EventType)
		assert.Equal(t, "oinr_1", event.OrderReference)
		assert.Equal(t, "500", event.PaidAmount.String())
		assert.Equal(t, "SUCCESS", event.PaymentStatus)
		assert.True(t, event.IsCompletedPayment())
	})

	t.Run("Flat Order Shape", func(t *testing.T) {
		raw := `{"type":"ORDER_PAID","data":{"order_id":"oinr_2","order_amount":"250.50","order_status":"paid"}}`

		event, err := ParsePayload([]byte(raw))

		require.NoError(t, err)
		assert.Equal(t, "oinr_2", event.OrderReference)
		assert.Equal(t, "250.5", event.PaidAmount.String())
		assert.Equal(t, "PAID", event.PaymentStatus)
		assert.True(t, event.IsCompletedPayment())
	})

	t.Run("Payment Link Shape", func(t *testing.T) {
		raw := `{"type":"PAYMENT_LINK_EVENT","data":{"link_id":"link_9","link_amount_paid":1000,"link_status":"PAID"}}`

		event, err := ParsePayload([]byte(raw))

		require.NoError(t, err)
		assert.Equal(t, "link_9", event.OrderReference)
		assert.Equal(t, "1000", event.PaidAmount.String())
		assert.True(t, event.IsCompletedPayment())
	})

	t.Run("Failed Payment Is Not Completed", func(t *testing.T) {
		raw := `{"type":"PAYMENT_FAILED_WEBHOOK","data":{"order":{"order_id":"oinr_1","order_amount":500},"payment":{"payment_status":"FAILED"}}}`

		event, err := ParsePayload([]byte(raw))

		require.NoError(t, err)
		assert.False(t, event.IsCompletedPayment())
	})

	t.Run("Completed Type With Unpaid Status", func(t *testing.T) {
		raw := `{"type":"PAYMENT_LINK_EVENT","data":{"link_id":"link_9","link_amount_paid":0,"link_status":"PARTIALLY_PAID"}}`

		event, err := ParsePayload([]byte(raw))

		require.NoError(t, err)
		assert.False(t, event.IsCompletedPayment())
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, raw := range []string{
			`not json`,
			`{"type":"ORDER_PAID"}`,
			`{"data":{"order_id":"x"}}`,
			`{"type":"ORDER_PAID","data":{"order_amount":5}}`,
		} {
			_, err := ParsePayload([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformedPayload, raw)
		}
	})
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"type":"ORDER_PAID"}`)
	signature := Sign("secret", "1700000000", body)

	assert.NoError(t, VerifySignature("secret", "1700000000", body, signature))
	assert.ErrorIs(t, VerifySignature("other", "1700000000", body, signature), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature("secret", "1700000001", body, signature), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature("secret", "1700000000", []byte(`{}`), signature), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature("secret", "1700000000", body, ""), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature("", "1700000000", body, signature), ErrInvalidSignature)
}
