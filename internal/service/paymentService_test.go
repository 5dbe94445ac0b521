package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/metric"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/payment"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/service/mocks"
)

func setupPayment(t *testing.T) (*mocks.OrderPaymentRepository, *mocks.PaymentGateway, *mocks.EventPublisher, *mocks.PaymentStateCache, *PaymentService) {
	mockRepo := mocks.NewOrderPaymentRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	mockPublisher := mocks.NewEventPublisher(t)
	mockCache := mocks.NewPaymentStateCache(t)
	svc := NewPaymentService(mockRepo, mockGateway, mockPublisher, mockCache)

	return mockRepo, mockGateway, mockPublisher, mockCache, svc
}

func pendingOrder(total models.Centavos) models.OrderPayment {
	return models.OrderPayment{
		OrderID:       "order-1",
		CustomerID:    "cust-1",
		Total:         total,
		PaymentStatus: models.StatusPending,
	}
}

func cardCheckoutRequest() models.CheckoutRequest {
	return models.CheckoutRequest{
		OrderID:       "order-1",
		PaymentMethod: models.MethodCard,
		Customer: models.Customer{
			Name:        "João Silva",
			Email:       "joao@example.com",
			Document:    "123.456.789-09",
			LegalStatus: "individual",
			Phone:       "+55 11 99999-0000",
		},
		Card: &models.CardDetails{
			Number:     "4111111111111111",
			HolderName: "JOAO SILVA",
			ExpMonth:   12,
			ExpYear:    2030,
			CVV:        "123",
		},
		Items: []models.LineItem{
			{Description: "Publicação em site", Amount: 5000, Quantity: 1, Code: "site-1"},
		},
		ContentAmount: 3000,
	}
}

// Сценарий: заказ на 8000 (товар 5000 + контент 3000), списание картой
// проходит со статусом processing. Проверяем, что payment_id привязан
// и статус заказа стал processing.
func TestPaymentService_Pay_CardSuccess(t *testing.T) {
	//1. Arrange (подготовка)
	mockRepo, mockGateway, mockPublisher, mockCache, svc := setupPayment(t)
	req := cardCheckoutRequest()

	mockRepo.On("GetByOrderID", mock.Anything, "order-1").Return(pendingOrder(8000), nil)
	mockGateway.On("TokenizeCard", mock.Anything, *req.Card).Return("token_abc", nil)
	mockGateway.On("ChargeCard", mock.Anything, mock.MatchedBy(func(cr models.ChargeRequest) bool {
		return cr.CardToken == "token_abc" && cr.Amount == 8000 && len(cr.Items) == 2
	})).Return(models.GatewayChargeResult{
		GatewayOrderID:  "or_1",
		GatewayChargeID: "ch_123",
		Status:          models.StatusProcessing,
	}, nil)
	mockRepo.On("AttachPaymentID", mock.Anything, "order-1", "ch_123", models.StatusProcessing).Return(nil)
	mockCache.On("Set", "order-1", mock.Anything).Return()
	mockPublisher.On("Publish", mock.Anything).Return(nil)

	//2. Act (действие)
	result, err := svc.Pay(context.Background(), req)

	//3. Assert
	assert.NoError(t, err)
	assert.Equal(t, "ch_123", result.PaymentID)
	assert.Equal(t, models.StatusProcessing, result.PaymentStatus)

	mockRepo.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
}

// Отказ шлюза: заказ сразу помечается failed, пользователю — ошибка.
func TestPaymentService_Pay_Rejected(t *testing.T) {
	mockRepo, mockGateway, mockPublisher, mockCache, svc := setupPayment(t)
	req := cardCheckoutRequest()

	mockRepo.On("GetByOrderID", mock.Anything, "order-1").Return(pendingOrder(8000), nil)
	mockGateway.On("TokenizeCard", mock.Anything, mock.Anything).Return("token_abc", nil)
	mockGateway.On("ChargeCard", mock.Anything, mock.Anything).
		Return(models.GatewayChargeResult{}, payment.ErrGatewayRejected)
	mockRepo.On("SetPaymentStatus", mock.Anything, "order-1", models.StatusFailed).Return(nil)
	mockCache.On("Delete", "order-1").Return()
	mockPublisher.On("Publish", mock.Anything).Return(nil)

	_, err := svc.Pay(context.Background(), req)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, payment.ErrGatewayRejected))
	mockRepo.AssertNotCalled(t, "AttachPaymentID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Шлюз недоступен на списании: заказ остается pending без payment_id,
// автоповтора нет — исход списания неизвестен.
func TestPaymentService_Pay_Unavailable(t *testing.T) {
	mockRepo, mockGateway, _, _, svc := setupPayment(t)
	req := cardCheckoutRequest()

	mockRepo.On("GetByOrderID", mock.Anything, "order-1").Return(pendingOrder(8000), nil)
	mockGateway.On("TokenizeCard", mock.Anything, mock.Anything).Return("token_abc", nil)
	mockGateway.On("ChargeCard", mock.Anything, mock.Anything).
		Return(models.GatewayChargeResult{}, payment.ErrGatewayUnavailable).Once()

	_, err := svc.Pay(context.Background(), req)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, payment.ErrGatewayUnavailable))
	mockRepo.AssertNotCalled(t, "AttachPaymentID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	// Списание не ретраится
	mockGateway.AssertNumberOfCalls(t, "ChargeCard", 1)
}

// Таймаут токенизации: три попытки, списание не создается,
// payment_id не привязывается (заказ остается pending).
func TestPaymentService_Pay_TokenizeTimeout(t *testing.T) {
	mockRepo, mockGateway, _, _, svc := setupPayment(t)
	req := cardCheckoutRequest()

	mockRepo.On("GetByOrderID", mock.Anything, "order-1").Return(pendingOrder(8000), nil)
	mockGateway.On("TokenizeCard", mock.Anything, mock.Anything).
		Return("", payment.ErrGatewayUnavailable).Times(3)

	_, err := svc.Pay(context.Background(), req)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, payment.ErrGatewayUnavailable))
	mockGateway.AssertNumberOfCalls(t, "TokenizeCard", 3)
	mockGateway.AssertNotCalled(t, "ChargeCard", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "AttachPaymentID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Отказ на токенизации (4xx) не ретраится.
func TestPaymentService_Pay_TokenizeRejected(t *testing.T) {
	mockRepo, mockGateway, _, _, svc := setupPayment(t)
	req := cardCheckoutRequest()

	mockRepo.On("GetByOrderID", mock.Anything, "order-1").Return(pendingOrder(8000), nil)
	mockGateway.On("TokenizeCard", mock.Anything, mock.Anything).
		Return("", payment.ErrGatewayRejected).Once()

	_, err := svc.Pay(context.Background(), req)

	assert.True(t, errors.Is(err, payment.ErrGatewayRejected))
	mockGateway.AssertNumberOfCalls(t, "TokenizeCard", 1)
}

// PIX: токенизация не нужна, в результате — QR-код и срок его действия.
func TestPaymentService_Pay_Pix(t *testing.T) {
	mockRepo, mockGateway, mockPublisher, mockCache, svc := setupPayment(t)
	req := cardCheckoutRequest()
	req.PaymentMethod = models.MethodPix
	req.Card = nil

	mockRepo.On("GetByOrderID", mock.Anything, "order-1").Return(pendingOrder(8000), nil)
	mockGateway.On("ChargePix", mock.Anything, mock.Anything).Return(models.GatewayChargeResult{
		GatewayOrderID:  "or_2",
		GatewayChargeID: "ch_456",
		Status:          models.StatusPendingPayment,
		QRCode:          "00020126...",
	}, nil)
	mockRepo.On("AttachPaymentID", mock.Anything, "order-1", "ch_456", models.StatusPendingPayment).Return(nil)
	mockCache.On("Set", "order-1", mock.Anything).Return()
	mockPublisher.On("Publish", mock.Anything).Return(nil)

	result, err := svc.Pay(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, "00020126...", result.QRCode)
	assert.Equal(t, models.StatusPendingPayment, result.PaymentStatus)
	mockGateway.AssertNotCalled(t, "TokenizeCard", mock.Anything, mock.Anything)
}

// Уже оплаченный заказ второй раз не оплачивается.
func TestPaymentService_Pay_AlreadyPaid(t *testing.T) {
	mockRepo, mockGateway, _, _, svc := setupPayment(t)
	req := cardCheckoutRequest()

	order := pendingOrder(8000)
	order.PaymentStatus = models.StatusPaid
	mockRepo.On("GetByOrderID", mock.Anything, "order-1").Return(order, nil)

	_, err := svc.Pay(context.Background(), req)

	assert.True(t, errors.Is(err, payment.ErrValidation))
	mockGateway.AssertNotCalled(t, "ChargeCard", mock.Anything, mock.Anything)
}

// Test для метода GetPaymentStatus
func TestPaymentService_GetPaymentStatus_CacheHit(t *testing.T) {
	mockRepo, _, _, mockCache, svc := setupPayment(t)

	order := pendingOrder(8000)
	mockCache.On("Get", "order-1").Return(&order, true)
	hitsBefore := testutil.ToFloat64(metric.CacheHitsTotal.WithLabelValues("hit"))

	res, err := svc.GetPaymentStatus(context.Background(), "order-1")

	assert.NoError(t, err)
	assert.Equal(t, order.OrderID, res.OrderID)
	mockRepo.AssertNumberOfCalls(t, "GetByOrderID", 0)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(metric.CacheHitsTotal.WithLabelValues("hit")))
}

func TestPaymentService_GetPaymentStatus_CacheMiss(t *testing.T) {
	mockRepo, _, _, mockCache, svc := setupPayment(t)

	order := pendingOrder(8000)
	mockCache.On("Get", "order-1").Return((*models.OrderPayment)(nil), false)
	mockRepo.On("GetByOrderID", mock.Anything, "order-1").Return(order, nil)
	mockCache.On("Set", "order-1", mock.Anything).Return()
	missesBefore := testutil.ToFloat64(metric.CacheHitsTotal.WithLabelValues("miss"))

	res, err := svc.GetPaymentStatus(context.Background(), "order-1")

	assert.NoError(t, err)
	assert.Equal(t, order.OrderID, res.OrderID)
	assert.Equal(t, missesBefore+1, testutil.ToFloat64(metric.CacheHitsTotal.WithLabelValues("miss")))
}
