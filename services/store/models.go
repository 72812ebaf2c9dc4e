package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest representa a requisição para criar e pagar um pedido
type CreateOrderRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Address   string `json:"address" binding:"required,max=255"`
	Consignee string `json:"consignee" binding:"required,max=50"`
	Phone     string `json:"phone" binding:"required,max=20"`
}

// RechargeRequest representa a requisição de recarga de saldo
type RechargeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// OrderResponse representa o resultado de uma compra bem-sucedida.
// IDs de 64 bits são serializados como string para não perder
// precisão no JavaScript do frontend.
type OrderResponse struct {
	OrderID     int64           `json:"order_id,string"`
	OrderNo     string          `json:"order_no"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	PayTime     time.Time       `json:"pay_time"`
}

// RechargeResponse representa o resultado de uma recarga bem-sucedida
type RechargeResponse struct {
	TransactionID   int64           `json:"transaction_id,string"`
	Amount          decimal.Decimal `json:"amount"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	TransactionTime time.Time       `json:"transaction_time"`
}

// OrderDetailResponse representa um pedido com seus itens
type OrderDetailResponse struct {
	Order *Order      `json:"order"`
	Items []OrderItem `json:"items"`
}

// ProductPublic representa a visão pública de um produto
type ProductPublic struct {
	ID     int64           `json:"id,string"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Status string          `json:"status"`
}
