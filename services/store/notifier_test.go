package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_DeliversOrderPaidEvent(t *testing.T) {
	// Arrange
	var received OrderPaidEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	order := NewPaidOrder(123, "20250901120000123456", 42,
		decimal.RequireFromString("40.00"), "221B Baker Street", "Jason", "13888888888", time.Now())

	// Act
	notifier.NotifyOrderPaid(order)

	// Assert
	assert.Equal(t, "123", received.OrderID)
	assert.Equal(t, "20250901120000123456", received.OrderNo)
	assert.Equal(t, "42", received.UserID)
	assert.Equal(t, "40", received.TotalAmount)
	assert.NotEmpty(t, received.EventID)
	assert.NotEmpty(t, received.PaidAt)
}

func TestWebhookNotifier_DisabledWithoutURL(t *testing.T) {
	notifier := NewWebhookNotifier("")
	order := NewPaidOrder(123, "20250901120000123456", 42,
		decimal.RequireFromString("40.00"), "a", "b", "c", time.Now())

	// Não deve entrar em pânico nem bloquear sem URL configurada
	notifier.NotifyOrderPaid(order)
}

func TestWebhookNotifier_SwallowsDeliveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	order := NewPaidOrder(123, "20250901120000123456", 42,
		decimal.RequireFromString("40.00"), "a", "b", "c", time.Now())

	// Falha do destino é logada e descartada
	notifier.NotifyOrderPaid(order)
}
