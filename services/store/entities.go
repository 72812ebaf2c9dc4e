package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// User representa uma conta de usuário com saldo
type User struct {
	ID        int64           `json:"id" db:"id"`
	Username  string          `json:"username" db:"username"`
	Email     string          `json:"email" db:"email"`
	Phone     string          `json:"phone" db:"phone"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// UserStatus representa os possíveis status de uma conta
const (
	UserStatusNormal = "normal"
	UserStatusFrozen = "frozen"
)

// Product representa um produto à venda
type Product struct {
	ID         int64           `json:"id" db:"id"`
	MerchantID int64           `json:"merchant_id" db:"merchant_id"`
	Name       string          `json:"name" db:"name"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Stock      int             `json:"stock" db:"stock"`
	Status     string          `json:"status" db:"status"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductStatus representa os possíveis status de um produto
const (
	ProductStatusOnSale     = "on_sale"
	ProductStatusOffSale    = "off_sale"
	ProductStatusOutOfStock = "out_of_stock"
)

// Order representa um pedido no sistema
type Order struct {
	ID          int64           `json:"id" db:"id"`
	OrderNo     string          `json:"order_no" db:"order_no"`
	UserID      int64           `json:"user_id" db:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	PayAmount   decimal.Decimal `json:"pay_amount" db:"pay_amount"`
	Status      string          `json:"status" db:"status"`
	Address     string          `json:"address" db:"address"`
	Consignee   string          `json:"consignee" db:"consignee"`
	Phone       string          `json:"phone" db:"phone"`
	PayTime     time.Time       `json:"pay_time" db:"pay_time"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderStatus representa os possíveis status de um pedido
// O fluxo de pagamento é síncrono: pedidos nascem pagos.
// Transições posteriores (envio, conclusão, cancelamento, reembolso)
// acontecem fora deste serviço.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunding = "refunding"
	OrderStatusRefunded  = "refunded"
)

// NewPaidOrder cria um pedido já pago (cobrança imediata)
func NewPaidOrder(id int64, orderNo string, userID int64, totalCost decimal.Decimal, address, consignee, phone string, payTime time.Time) *Order {
	return &Order{
		ID:          id,
		OrderNo:     orderNo,
		UserID:      userID,
		TotalAmount: totalCost,
		PayAmount:   totalCost,
		Status:      OrderStatusPaid,
		Address:     address,
		Consignee:   consignee,
		Phone:       phone,
		PayTime:     payTime,
		CreatedAt:   payTime,
		UpdatedAt:   payTime,
	}
}

// OrderItem representa um item de pedido.
// Nome e preço do produto são snapshots do momento da compra:
// mudanças posteriores no produto não alteram o histórico.
type OrderItem struct {
	ID           int64           `json:"id" db:"id"`
	OrderID      int64           `json:"order_id" db:"order_id"`
	ProductID    int64           `json:"product_id" db:"product_id"`
	ProductName  string          `json:"product_name" db:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price" db:"product_price"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// NewOrderItem cria um item de pedido com snapshot do produto
func NewOrderItem(id, orderID int64, product *Product, quantity int, subtotal decimal.Decimal) *OrderItem {
	return &OrderItem{
		ID:           id,
		OrderID:      orderID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     quantity,
		Subtotal:     subtotal,
		CreatedAt:    time.Now(),
	}
}

// Transaction representa um lançamento no livro-razão.
// Registros são append-only: nunca são atualizados após a criação.
type Transaction struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"user_id" db:"user_id"`
	OrderID   *int64          `json:"order_id" db:"order_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Type      string          `json:"type" db:"type"`
	Status    string          `json:"status" db:"status"`
	Remark    string          `json:"remark" db:"remark"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// TransactionType representa os possíveis tipos de lançamento
const (
	TransactionTypeRecharge = "recharge"
	TransactionTypePurchase = "purchase"
	TransactionTypeRefund   = "refund"
)

// TransactionStatus representa os possíveis status de um lançamento
const (
	TransactionStatusSuccess    = "success"
	TransactionStatusFailed     = "failed"
	TransactionStatusProcessing = "processing"
)

// NewRechargeTransaction cria um lançamento de recarga sem pedido associado
func NewRechargeTransaction(id, userID int64, amount decimal.Decimal, remark string) *Transaction {
	return &Transaction{
		ID:        id,
		UserID:    userID,
		OrderID:   nil,
		Amount:    amount,
		Type:      TransactionTypeRecharge,
		Status:    TransactionStatusSuccess,
		Remark:    remark,
		CreatedAt: time.Now(),
	}
}
