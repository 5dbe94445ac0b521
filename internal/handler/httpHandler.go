package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/logger/sl"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/metric"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/payment"
)

// PaymentProcessor — контракт оркестратора оплаты для HTTP-слоя.
//
//go:generate mockery --name=PaymentProcessor --output=./mocks --case=underscore
type PaymentProcessor interface {
	Pay(ctx context.Context, req models.CheckoutRequest) (models.CheckoutResult, error)
	GetPaymentStatus(ctx context.Context, orderID string) (models.OrderPayment, error)
}

// WebhookProcessor — контракт реконсилиатора для HTTP-слоя.
//
//go:generate mockery --name=WebhookProcessor --output=./mocks --case=underscore
type WebhookProcessor interface {
	HandleGatewayEvent(ctx context.Context, event models.WebhookEvent) error
}

type PaymentHandler struct {
	payments PaymentProcessor
	webhooks WebhookProcessor
}

func NewPaymentHandler(payments PaymentProcessor, webhooks WebhookProcessor) *PaymentHandler {
	return &PaymentHandler{payments: payments, webhooks: webhooks}
}

// CheckoutHandler — POST /checkout/pay. Разводит два принципиально разных
// исхода: "платеж отклонен" (можно повторить другим способом) и
// "не удалось подтвердить платеж" (ждать/обратиться в поддержку).
// Смешение этих исходов — исторический класс багов.
func (h *PaymentHandler) CheckoutHandler(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	ctx := c.Request.Context()

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("http.request.order_id", req.OrderID))

	result, err := h.payments.Pay(ctx, req)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payment.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Заказ не найден", "code": "order_not_found"})
	case errors.Is(err, payment.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation_failed"})
	case errors.Is(err, payment.ErrGatewayRejected):
		// Действие на стороне пользователя: попробовать другую карту/способ
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Платеж отклонен", "code": "payment_rejected"})
	case errors.Is(err, payment.ErrGatewayUnavailable):
		// Исход неизвестен: не повторять автоматически
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Не удалось подтвердить платеж, попробуйте позже", "code": "payment_unconfirmed"})
	default:
		// Сюда попадает и ErrBuildInconsistency: внутренний баг,
		// деталей наружу не отдаем
		slog.Error("внутренняя ошибка оплаты", slog.Any("error", err), sl.Traced(c.Request.Context()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка", "code": "internal"})
	}
}

// WebhookHandler — POST /webhooks/payment-gateway.
// 400 только на структурно битое тело; любой другой исход — 200,
// иначе шлюз будет доставлять событие снова и снова.
func (h *PaymentHandler) WebhookHandler(c *gin.Context) {
	var event models.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}
	if event.Type == "" || event.Data.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Событие без type или data.id"})
		return
	}
	ctx := c.Request.Context()

	if err := h.webhooks.HandleGatewayEvent(ctx, event); err != nil {
		// Логируем и все равно подтверждаем доставку
		slog.Warn("событие вебхука не обработано",
			slog.String("event_type", event.Type), slog.Any("error", err), sl.Traced(ctx))
	}
	c.Status(http.StatusOK)
}

// StatusHandler — GET /payment/status/:order_id, опрос статуса с фронта.
func (h *PaymentHandler) StatusHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неправильный ID"})
		return
	}
	ctx := c.Request.Context()

	order, err := h.payments.GetPaymentStatus(ctx, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Заказ не найден"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id":       order.OrderID,
		"payment_status": order.PaymentStatus,
		"paid":           order.PaymentStatus == models.StatusPaid,
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()
		// После того как хендлер отработал, фиксируем время и статус
		duration := time.Since(start)
		status := c.Writer.Status()

		metric.ObserveRequest(duration, status)
	}
}
