package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewPaidOrder(t *testing.T) {
	// Arrange
	totalCost := decimal.RequireFromString("40.00")
	payTime := time.Now()

	// Act
	order := NewPaidOrder(123, "20250901120000123456", 42, totalCost, "221B Baker Street", "Jason", "13888888888", payTime)

	// Assert
	if order.ID != 123 {
		t.Errorf("Expected ID 123, got %d", order.ID)
	}
	if order.OrderNo != "20250901120000123456" {
		t.Errorf("Expected OrderNo 20250901120000123456, got %s", order.OrderNo)
	}
	if order.UserID != 42 {
		t.Errorf("Expected UserID 42, got %d", order.UserID)
	}
	if order.Status != OrderStatusPaid {
		t.Errorf("Expected Status %s, got %s", OrderStatusPaid, order.Status)
	}
	if !order.TotalAmount.Equal(totalCost) {
		t.Errorf("Expected TotalAmount %s, got %s", totalCost, order.TotalAmount)
	}
	if !order.PayAmount.Equal(totalCost) {
		t.Errorf("Expected PayAmount %s, got %s", totalCost, order.PayAmount)
	}
	if !order.PayTime.Equal(payTime) {
		t.Errorf("Expected PayTime %v, got %v", payTime, order.PayTime)
	}
}

func TestNewOrderItem_SnapshotsProduct(t *testing.T) {
	// Arrange
	product := &Product{
		ID:     7,
		Name:   "mechanical keyboard",
		Price:  decimal.RequireFromString("20.00"),
		Stock:  5,
		Status: ProductStatusOnSale,
	}

	// Act
	item := NewOrderItem(555, 123, product, 2, decimal.RequireFromString("40.00"))

	// O produto muda depois da compra
	product.Name = "renamed keyboard"
	product.Price = decimal.RequireFromString("99.99")

	// Assert: o item preserva o snapshot do momento da compra
	if item.ProductName != "mechanical keyboard" {
		t.Errorf("Expected snapshotted name 'mechanical keyboard', got %s", item.ProductName)
	}
	if !item.ProductPrice.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("Expected snapshotted price 20.00, got %s", item.ProductPrice)
	}
	if item.Quantity != 2 {
		t.Errorf("Expected Quantity 2, got %d", item.Quantity)
	}
	if !item.Subtotal.Equal(decimal.RequireFromString("40.00")) {
		t.Errorf("Expected Subtotal 40.00, got %s", item.Subtotal)
	}
	if item.OrderID != 123 {
		t.Errorf("Expected OrderID 123, got %d", item.OrderID)
	}
}

func TestNewRechargeTransaction(t *testing.T) {
	// Arrange
	amount := decimal.RequireFromString("25.50")

	// Act
	transaction := NewRechargeTransaction(777, 42, amount, "user [jason] recharged [25.5] successfully")

	// Assert
	if transaction.ID != 777 {
		t.Errorf("Expected ID 777, got %d", transaction.ID)
	}
	if transaction.UserID != 42 {
		t.Errorf("Expected UserID 42, got %d", transaction.UserID)
	}
	if transaction.OrderID != nil {
		t.Errorf("Expected nil OrderID for recharge, got %v", *transaction.OrderID)
	}
	if transaction.Type != TransactionTypeRecharge {
		t.Errorf("Expected Type %s, got %s", TransactionTypeRecharge, transaction.Type)
	}
	if transaction.Status != TransactionStatusSuccess {
		t.Errorf("Expected Status %s, got %s", TransactionStatusSuccess, transaction.Status)
	}
	if !transaction.Amount.Equal(amount) {
		t.Errorf("Expected Amount %s, got %s", amount, transaction.Amount)
	}
	if transaction.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}
