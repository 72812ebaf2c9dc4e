package main

import (
	"log"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Notifier publica eventos de pedido pago para sistemas externos
type Notifier interface {
	NotifyOrderPaid(order *Order)
}

// OrderPaidEvent representa o payload do webhook de pedido pago
type OrderPaidEvent struct {
	EventID     string `json:"event_id"`
	OrderID     string `json:"order_id"`
	OrderNo     string `json:"order_no"`
	UserID      string `json:"user_id"`
	TotalAmount string `json:"total_amount"`
	PaidAt      string `json:"paid_at"`
}

// WebhookNotifier entrega eventos via HTTP POST.
// Entrega é melhor-esforço: falhas são logadas e descartadas,
// nunca desfazem a transação que já commitou.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier cria um notificador para a URL configurada.
// URL vazia desliga a entrega.
func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2)

	return &WebhookNotifier{
		client: client,
		url:    url,
	}
}

// NotifyOrderPaid envia o evento de pedido pago
func (n *WebhookNotifier) NotifyOrderPaid(order *Order) {
	if n.url == "" {
		return
	}

	event := OrderPaidEvent{
		EventID:     uuid.New().String(),
		OrderID:     strconv.FormatInt(order.ID, 10),
		OrderNo:     order.OrderNo,
		UserID:      strconv.FormatInt(order.UserID, 10),
		TotalAmount: order.TotalAmount.String(),
		PaidAt:      order.PayTime.Format(time.RFC3339),
	}

	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(n.url)
	if err != nil {
		log.Printf("⚠️ [WEBHOOK] Failed to deliver order paid event | OrderNo=%s | %v", order.OrderNo, err)
		return
	}
	if resp.IsError() {
		log.Printf("⚠️ [WEBHOOK] Order paid event rejected | OrderNo=%s | status=%d", order.OrderNo, resp.StatusCode())
		return
	}

	log.Printf("📣 [WEBHOOK] Order paid event delivered | OrderNo=%s", order.OrderNo)
}
