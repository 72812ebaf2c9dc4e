package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// OrderUseCase contém a lógica de negócio dos pedidos
type OrderUseCase struct {
	repository StoreRepository
	idGen      *SnowflakeGenerator
	notifier   Notifier
}

// NewOrderUseCase cria uma nova instância de OrderUseCase
func NewOrderUseCase(
	repository StoreRepository,
	idGen *SnowflakeGenerator,
	notifier Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		repository: repository,
		idGen:      idGen,
		notifier:   notifier,
	}
}

// CreateOrderAndPay cria um pedido e debita o pagamento na mesma transação.
// Locks são adquiridos sempre na mesma ordem (usuário, depois produto)
// para evitar deadlock entre compras concorrentes.
func (uc *OrderUseCase) CreateOrderAndPay(ctx context.Context, userID int64, req CreateOrderRequest) (*OrderResponse, error) {
	log.Printf("➡️ [CREATE ORDER] UserID: %d | ProductID: %d | Quantity: %d", userID, req.ProductID, req.Quantity)

	// 1. Inicia a transação
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 2. Obtém usuário e produto com LOCK PESSIMISTA (SELECT FOR UPDATE),
	// nessa ordem fixa
	user, err := uc.repository.GetUserForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	product, err := uc.repository.GetProductForUpdate(ctx, tx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 3. Regras de negócio: status do produto, estoque, saldo
	totalCost := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if err := validatePurchase(user, product, req.Quantity, totalCost); err != nil {
		log.Printf("❌ [CREATE ORDER] Validation failed | UserID=%d ProductID=%d | %v", userID, req.ProductID, err)
		return nil, err
	}

	// 4. Aplica as mutações: debita o saldo, baixa o estoque
	newBalance := user.Balance.Sub(totalCost)
	newStock := product.Stock - req.Quantity

	userRows, err := uc.repository.UpdateUserBalance(ctx, tx, user.ID, newBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	productRows, err := uc.repository.UpdateProductStock(ctx, tx, product.ID, newStock)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	// 5. Guarda contra lost update: com os row locks adquiridos no passo 2,
	// zero linhas afetadas não deveria acontecer. Se acontecer, a disciplina
	// de locking foi violada em algum lugar: aborta tudo e sinaliza retry.
	if userRows == 0 || productRows == 0 {
		log.Printf("🚨 [CREATE ORDER] Zero rows affected under row lock! UserID=%d ProductID=%d userRows=%d productRows=%d",
			user.ID, product.ID, userRows, productRows)
		return nil, ErrConcurrencyConflict
	}

	// 6. Gera IDs e insere o pedido (pagamento síncrono: nasce pago)
	orderID, err := uc.idGen.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}
	orderNo, err := uc.idGen.NextOrderNo()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	now := time.Now()
	order := NewPaidOrder(orderID, orderNo, user.ID, totalCost, req.Address, req.Consignee, req.Phone, now)
	if err := uc.repository.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	// 7. Insere o item com snapshot de nome e preço do produto
	itemID, err := uc.idGen.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order item id: %w", err)
	}
	item := NewOrderItem(itemID, order.ID, product, req.Quantity, totalCost)
	if err := uc.repository.CreateOrderItem(ctx, tx, item); err != nil {
		return nil, err
	}

	// 8. Commit da transação
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	log.Printf("✅ [CREATE ORDER] Success | OrderNo: %s | User: '%s' | Product: '%s' x%d | Cost: %s",
		order.OrderNo, user.Username, product.Name, req.Quantity, totalCost.String())

	// Notificação fora da transação: falha de entrega não desfaz a compra
	if uc.notifier != nil {
		go uc.notifier.NotifyOrderPaid(order)
	}

	return &OrderResponse{
		OrderID:     order.ID,
		OrderNo:     order.OrderNo,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		NewBalance:  newBalance,
		PayTime:     order.PayTime,
	}, nil
}

// GetOrderDetail busca um pedido com itens, restrito ao dono
func (uc *OrderUseCase) GetOrderDetail(ctx context.Context, userID, orderID int64) (*OrderDetailResponse, error) {
	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Pedidos de outros usuários são tratados como inexistentes
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	items, err := uc.repository.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	return &OrderDetailResponse{Order: order, Items: items}, nil
}

// validatePurchase valida na ordem: status do produto, estoque, saldo.
// Para no primeiro erro.
func validatePurchase(user *User, product *Product, quantity int, totalCost decimal.Decimal) error {
	if product.Status != ProductStatusOnSale {
		return ErrProductNotForSale
	}
	if product.Stock < quantity {
		return &InsufficientStockError{
			ProductName: product.Name,
			Stock:       product.Stock,
			Requested:   quantity,
		}
	}
	if user.Balance.LessThan(totalCost) {
		return &InsufficientBalanceError{
			Balance:  user.Balance,
			Required: totalCost,
		}
	}
	return nil
}

// PaymentUseCase contém a lógica de negócio de pagamentos e recargas
type PaymentUseCase struct {
	repository StoreRepository
	idGen      *SnowflakeGenerator
}

// NewPaymentUseCase cria uma nova instância de PaymentUseCase
func NewPaymentUseCase(repository StoreRepository, idGen *SnowflakeGenerator) *PaymentUseCase {
	return &PaymentUseCase{
		repository: repository,
		idGen:      idGen,
	}
}

// RechargeAccount credita saldo na conta e registra o lançamento de recarga
func (uc *PaymentUseCase) RechargeAccount(ctx context.Context, userID int64, amount decimal.Decimal) (*RechargeResponse, error) {
	log.Printf("➡️ [RECHARGE] UserID: %d | Amount: %s", userID, amount.String())

	// A camada de validação já barra valores abaixo do mínimo,
	// mas valores não-positivos nunca podem passar daqui
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	// 1. Inicia a transação
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 2. Obtém o usuário com LOCK PESSIMISTA (SELECT FOR UPDATE)
	user, err := uc.repository.GetUserForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	// 3. Credita o saldo
	newBalance := user.Balance.Add(amount)

	rows, err := uc.repository.UpdateUserBalance(ctx, tx, user.ID, newBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	if rows == 0 {
		log.Printf("🚨 [RECHARGE] Zero rows affected under row lock! UserID=%d", user.ID)
		return nil, ErrConcurrencyConflict
	}

	// 4. Registra o lançamento de recarga no livro-razão
	transactionID, err := uc.idGen.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	remark := fmt.Sprintf("user [%s] recharged [%s] successfully", user.Username, amount.String())
	transaction := NewRechargeTransaction(transactionID, user.ID, amount, remark)
	if err := uc.repository.CreateTransaction(ctx, tx, transaction); err != nil {
		return nil, err
	}

	// 5. Commit da transação
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recharge transaction: %w", err)
	}

	log.Printf("✅ [RECHARGE] Success | TransactionID: %d | User: '%s' | Amount: %s | NewBalance: %s",
		transaction.ID, user.Username, amount.String(), newBalance.String())

	return &RechargeResponse{
		TransactionID:   transaction.ID,
		Amount:          amount,
		NewBalance:      newBalance,
		TransactionTime: transaction.CreatedAt,
	}, nil
}
