package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de negócio retornados pelos use cases e mapeados
// para HTTP na camada de handlers
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductNotForSale   = errors.New("product is not for sale")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrConcurrencyConflict = errors.New("concurrent update conflict, please retry")
	ErrClockRegression     = errors.New("clock moved backwards")
)

// InsufficientStockError indica estoque menor que a quantidade pedida
type InsufficientStockError struct {
	ProductName string
	Stock       int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product '%s': current stock %d, requested %d",
		e.ProductName, e.Stock, e.Requested)
}

// InsufficientBalanceError indica saldo menor que o custo total da compra
type InsufficientBalanceError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: current balance %s, required %s",
		e.Balance.String(), e.Required.String())
}
