package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// OrderUseCaseInterface define a interface para o use case de pedidos
type OrderUseCaseInterface interface {
	CreateOrderAndPay(ctx context.Context, userID int64, req CreateOrderRequest) (*OrderResponse, error)
	GetOrderDetail(ctx context.Context, userID, orderID int64) (*OrderDetailResponse, error)
}

// PaymentUseCaseInterface define a interface para o use case de pagamentos
type PaymentUseCaseInterface interface {
	RechargeAccount(ctx context.Context, userID int64, amount decimal.Decimal) (*RechargeResponse, error)
}

// StoreHandler contém os handlers HTTP da loja
type StoreHandler struct {
	orders          OrderUseCaseInterface
	payments        PaymentUseCaseInterface
	repository      StoreRepository
	tracer          trace.Tracer
	orderCounter    metric.Int64Counter
	rechargeCounter metric.Int64Counter
}

// NewStoreHandler cria uma nova instância de StoreHandler
func NewStoreHandler(
	orders OrderUseCaseInterface,
	payments PaymentUseCaseInterface,
	repository StoreRepository,
	tracer trace.Tracer,
	meter metric.Meter,
) *StoreHandler {
	orderCounter, err := meter.Int64Counter("store.orders.paid")
	if err != nil {
		log.Printf("⚠️ Failed to create order counter: %v", err)
	}
	rechargeCounter, err := meter.Int64Counter("store.recharges.completed")
	if err != nil {
		log.Printf("⚠️ Failed to create recharge counter: %v", err)
	}

	return &StoreHandler{
		orders:          orders,
		payments:        payments,
		repository:      repository,
		tracer:          tracer,
		orderCounter:    orderCounter,
		rechargeCounter: rechargeCounter,
	}
}

// CreateOrder cria e paga um pedido para o usuário autenticado
func (h *StoreHandler) CreateOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "create_order_and_pay")
	defer span.End()

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity),
	)

	resp, err := h.orders.CreateOrderAndPay(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		respondBusinessError(c, err)
		return
	}

	span.SetAttributes(attribute.String("order_no", resp.OrderNo))
	if h.orderCounter != nil {
		h.orderCounter.Add(ctx, 1)
	}

	c.JSON(http.StatusOK, resp)
}

// GetOrder busca um pedido do usuário autenticado
func (h *StoreHandler) GetOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_order")
	defer span.End()

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	span.SetAttributes(attribute.Int64("order_id", orderID))

	resp, err := h.orders.GetOrderDetail(ctx, userID, orderID)
	if err != nil {
		span.RecordError(err)
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Recharge credita saldo na conta do usuário autenticado
func (h *StoreHandler) Recharge(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "recharge_account")
	defer span.End()

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.String("amount", req.Amount.String()),
	)

	resp, err := h.payments.RechargeAccount(ctx, userID, req.Amount)
	if err != nil {
		span.RecordError(err)
		respondBusinessError(c, err)
		return
	}

	if h.rechargeCounter != nil {
		h.rechargeCounter.Add(ctx, 1)
	}

	c.JSON(http.StatusOK, resp)
}

// GetProduct retorna a visão pública de um produto
func (h *StoreHandler) GetProduct(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_product")
	defer span.End()

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.repository.GetProduct(ctx, productID)
	if err != nil {
		span.RecordError(err)
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProductPublic{
		ID:     product.ID,
		Name:   product.Name,
		Price:  product.Price,
		Stock:  product.Stock,
		Status: product.Status,
	})
}

// HealthCheck verifica a saúde do serviço
func (h *StoreHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "store-service",
	})
}

// respondBusinessError mapeia os erros de negócio para status HTTP.
// Erros inesperados viram 500 genérico: detalhes ficam só no log do servidor.
func respondBusinessError(c *gin.Context, err error) {
	var stockErr *InsufficientStockError
	var balanceErr *InsufficientBalanceError

	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrProductNotForSale),
		errors.Is(err, ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &stockErr), errors.As(err, &balanceErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
