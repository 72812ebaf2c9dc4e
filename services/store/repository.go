package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StoreRepository define a interface para operações de banco de dados da loja
type StoreRepository interface {
	BeginTx(ctx context.Context) (Tx, error)

	// Leituras com lock pessimista (SELECT FOR UPDATE), válidas só dentro de uma transação
	GetUserForUpdate(ctx context.Context, tx Tx, userID int64) (*User, error)
	GetProductForUpdate(ctx context.Context, tx Tx, productID int64) (*Product, error)

	// Atualizações condicionais: retornam a contagem de linhas afetadas
	UpdateUserBalance(ctx context.Context, tx Tx, userID int64, balance decimal.Decimal) (int64, error)
	UpdateProductStock(ctx context.Context, tx Tx, productID int64, stock int) (int64, error)

	CreateOrder(ctx context.Context, tx Tx, order *Order) error
	CreateOrderItem(ctx context.Context, tx Tx, item *OrderItem) error
	CreateTransaction(ctx context.Context, tx Tx, transaction *Transaction) error

	// Leituras sem lock
	GetProduct(ctx context.Context, productID int64) (*Product, error)
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error)
}

// Tx interface para transações
type Tx interface {
	Commit() error
	Rollback() error
}

// PostgresTx implementa a interface Tx
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit() error {
	return t.tx.Commit(context.Background())
}

func (t *PostgresTx) Rollback() error {
	return t.tx.Rollback(context.Background())
}

// PostgresStoreRepository implementa StoreRepository usando PostgreSQL
type PostgresStoreRepository struct {
	db *pgxpool.Pool
}

// NewStoreRepository cria uma nova instância de PostgresStoreRepository
func NewStoreRepository(db *pgxpool.Pool) StoreRepository {
	return &PostgresStoreRepository{
		db: db,
	}
}

// BeginTx inicia uma nova transação
func (r *PostgresStoreRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresTx{tx: tx}, nil
}

// GetUserForUpdate obtém o usuário com lock pessimista (FOR UPDATE)
func (r *PostgresStoreRepository) GetUserForUpdate(ctx context.Context, tx Tx, userID int64) (*User, error) {
	pgTx := tx.(*PostgresTx).tx

	query := `
		SELECT id, username, email, phone, balance, status, created_at, updated_at
		FROM users
		WHERE id = $1
		FOR UPDATE
	`

	var user User
	err := pgTx.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Phone,
		&user.Balance,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user with lock: %w", err)
	}

	return &user, nil
}

// GetProductForUpdate obtém o produto com lock pessimista (FOR UPDATE)
func (r *PostgresStoreRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID int64) (*Product, error) {
	pgTx := tx.(*PostgresTx).tx

	query := `
		SELECT id, merchant_id, name, price, stock, status, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var product Product
	err := pgTx.QueryRow(ctx, query, productID).Scan(
		&product.ID,
		&product.MerchantID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product with lock: %w", err)
	}

	return &product, nil
}

// UpdateUserBalance persiste o novo saldo e retorna as linhas afetadas
func (r *PostgresStoreRepository) UpdateUserBalance(ctx context.Context, tx Tx, userID int64, balance decimal.Decimal) (int64, error) {
	pgTx := tx.(*PostgresTx).tx

	ct, err := pgTx.Exec(ctx, `
		UPDATE users
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`, balance, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to update user balance: %w", err)
	}

	return ct.RowsAffected(), nil
}

// UpdateProductStock persiste o novo estoque e retorna as linhas afetadas
func (r *PostgresStoreRepository) UpdateProductStock(ctx context.Context, tx Tx, productID int64, stock int) (int64, error) {
	pgTx := tx.(*PostgresTx).tx

	ct, err := pgTx.Exec(ctx, `
		UPDATE products
		SET stock = $1, updated_at = NOW()
		WHERE id = $2
	`, stock, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to update product stock: %w", err)
	}

	return ct.RowsAffected(), nil
}

// CreateOrder insere um novo pedido
func (r *PostgresStoreRepository) CreateOrder(ctx context.Context, tx Tx, order *Order) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO orders (id, order_no, user_id, total_amount, pay_amount, status, address, consignee, phone, pay_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, order.ID, order.OrderNo, order.UserID, order.TotalAmount, order.PayAmount, order.Status,
		order.Address, order.Consignee, order.Phone, order.PayTime, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// CreateOrderItem insere o item do pedido com snapshot do produto
func (r *PostgresStoreRepository) CreateOrderItem(ctx context.Context, tx Tx, item *OrderItem) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO order_items (id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, item.OrderID, item.ProductID, item.ProductName, item.ProductPrice,
		item.Quantity, item.Subtotal, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}

	return nil
}

// CreateTransaction insere um lançamento no livro-razão
func (r *PostgresStoreRepository) CreateTransaction(ctx context.Context, tx Tx, transaction *Transaction) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO transactions (id, user_id, order_id, amount, type, status, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, transaction.ID, transaction.UserID, transaction.OrderID, transaction.Amount,
		transaction.Type, transaction.Status, transaction.Remark, transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetProduct busca um produto pelo ID
func (r *PostgresStoreRepository) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	var product Product
	err := r.db.QueryRow(ctx, `
		SELECT id, merchant_id, name, price, stock, status, created_at, updated_at
		FROM products WHERE id = $1
	`, productID).Scan(
		&product.ID,
		&product.MerchantID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// GetOrder busca um pedido pelo ID
func (r *PostgresStoreRepository) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	err := r.db.QueryRow(ctx, `
		SELECT id, order_no, user_id, total_amount, pay_amount, status, address, consignee, phone, pay_time, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(
		&order.ID,
		&order.OrderNo,
		&order.UserID,
		&order.TotalAmount,
		&order.PayAmount,
		&order.Status,
		&order.Address,
		&order.Consignee,
		&order.Phone,
		&order.PayTime,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// GetOrderItems busca os itens de um pedido
func (r *PostgresStoreRepository) GetOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at
		FROM order_items WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.Quantity,
			&item.Subtotal,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
