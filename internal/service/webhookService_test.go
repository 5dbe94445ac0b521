package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/payment"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/service/mocks"
)

func setupWebhook(t *testing.T) (*mocks.OrderPaymentRepository, *mocks.EventPublisher, *mocks.PaymentStateCache, *WebhookService) {
	mockRepo := mocks.NewOrderPaymentRepository(t)
	mockPublisher := mocks.NewEventPublisher(t)
	mockCache := mocks.NewPaymentStateCache(t)
	svc := NewWebhookService(mockRepo, mockPublisher, mockCache)

	return mockRepo, mockPublisher, mockCache, svc
}

func paidEvent(chargeID string) models.WebhookEvent {
	return models.WebhookEvent{
		ID:   "evt_1",
		Type: "charge.paid",
		Data: models.WebhookData{ID: chargeID},
	}
}

func processingOrder(chargeID string) models.OrderPayment {
	return models.OrderPayment{
		OrderID:       "order-1",
		PaymentID:     chargeID,
		PaymentStatus: models.StatusProcessing,
	}
}

// Сценарий: приходит charge.paid с id списания, дополненным пробелами
// (шлюз так делает). После нормализации заказ находится и становится paid.
func TestWebhookService_Paid(t *testing.T) {
	//1. Arrange (подготовка)
	mockRepo, mockPublisher, mockCache, svc := setupWebhook(t)

	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_1", "charge.paid").Return(true, nil)
	mockRepo.On("GetByChargeID", mock.Anything, "ch_123").Return(processingOrder("ch_123"), nil)
	mockRepo.On("SetPaymentStatus", mock.Anything, "order-1", models.StatusPaid).Return(nil)
	mockCache.On("Delete", "order-1").Return()
	mockPublisher.On("Publish", mock.Anything).Return(nil)

	//2. Act (действие)
	err := svc.HandleGatewayEvent(context.Background(), paidEvent(" ch_123 "))

	//3. Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// Идемпотентность: второй charge.paid для уже оплаченного заказа —
// конечное состояние то же, повторной записи нет.
func TestWebhookService_Paid_Idempotent(t *testing.T) {
	mockRepo, _, _, svc := setupWebhook(t)

	order := processingOrder("ch_123")
	order.PaymentStatus = models.StatusPaid

	event := paidEvent("ch_123")
	event.ID = "evt_2" // другой id события, дедупликация по id не сработает

	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_2", "charge.paid").Return(true, nil)
	mockRepo.On("GetByChargeID", mock.Anything, "ch_123").Return(order, nil)

	err := svc.HandleGatewayEvent(context.Background(), event)

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Повторная доставка того же события: дедупликация по id события
// останавливает обработку до похода за заказом.
func TestWebhookService_DuplicateDelivery(t *testing.T) {
	mockRepo, _, _, svc := setupWebhook(t)

	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_1", "charge.paid").Return(false, nil)

	err := svc.HandleGatewayEvent(context.Background(), paidEvent("ch_123"))

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "GetByChargeID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Неизвестный заказ: логируем и выходим без записи, а регистрацию
// события снимаем — повторная доставка не должна отлететь как дубликат.
func TestWebhookService_UnknownCharge(t *testing.T) {
	mockRepo, _, _, svc := setupWebhook(t)

	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_1", "charge.paid").Return(true, nil)
	mockRepo.On("GetByChargeID", mock.Anything, "ch_999").Return(models.OrderPayment{}, payment.ErrOrderNotFound)
	mockRepo.On("ReleaseWebhookEvent", mock.Anything, "evt_1").Return(nil)

	err := svc.HandleGatewayEvent(context.Background(), paidEvent("ch_999"))

	assert.True(t, errors.Is(err, payment.ErrReconciliationMiss))
	mockRepo.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertCalled(t, "ReleaseWebhookEvent", mock.Anything, "evt_1")
}

// Сценарий: charge.paid обгоняет привязку payment_id оркестратором.
// Первая доставка промахивается, но повторная — уже после привязки —
// обязана довести заказ до paid, а не умереть на дедупликации.
func TestWebhookService_EventBeforeAttach(t *testing.T) {
	mockRepo, mockPublisher, mockCache, svc := setupWebhook(t)

	// Первая доставка: payment_id еще не привязан
	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_1", "charge.paid").Return(true, nil).Once()
	mockRepo.On("GetByChargeID", mock.Anything, "ch_123").Return(models.OrderPayment{}, payment.ErrOrderNotFound).Once()
	mockRepo.On("ReleaseWebhookEvent", mock.Anything, "evt_1").Return(nil).Once()

	err := svc.HandleGatewayEvent(context.Background(), paidEvent("ch_123"))
	assert.True(t, errors.Is(err, payment.ErrReconciliationMiss))

	// Повторная доставка того же события: оркестратор уже привязал ch_123
	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_1", "charge.paid").Return(true, nil).Once()
	mockRepo.On("GetByChargeID", mock.Anything, "ch_123").Return(processingOrder("ch_123"), nil).Once()
	mockRepo.On("SetPaymentStatus", mock.Anything, "order-1", models.StatusPaid).Return(nil).Once()
	mockCache.On("Delete", "order-1").Return()
	mockPublisher.On("Publish", mock.Anything).Return(nil)

	err = svc.HandleGatewayEvent(context.Background(), paidEvent("ch_123"))

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// Сбой записи статуса: регистрация события снимается, чтобы повторная
// доставка получила полноценную попытку.
func TestWebhookService_WriteFailureReleasesClaim(t *testing.T) {
	mockRepo, _, _, svc := setupWebhook(t)

	dbErr := errors.New("db down")
	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_1", "charge.paid").Return(true, nil)
	mockRepo.On("GetByChargeID", mock.Anything, "ch_123").Return(processingOrder("ch_123"), nil)
	mockRepo.On("SetPaymentStatus", mock.Anything, "order-1", models.StatusPaid).Return(dbErr)
	mockRepo.On("ReleaseWebhookEvent", mock.Anything, "evt_1").Return(nil)

	err := svc.HandleGatewayEvent(context.Background(), paidEvent("ch_123"))

	assert.Error(t, err)
	mockRepo.AssertCalled(t, "ReleaseWebhookEvent", mock.Anything, "evt_1")
}

// Незнакомый тип события подтверждается и игнорируется.
func TestWebhookService_IgnoredEventType(t *testing.T) {
	mockRepo, _, _, svc := setupWebhook(t)

	event := models.WebhookEvent{
		ID:   "evt_3",
		Type: "charge.antifraud_pending",
		Data: models.WebhookData{ID: "ch_123"},
	}
	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_3", "charge.antifraud_pending").Return(true, nil)

	err := svc.HandleGatewayEvent(context.Background(), event)

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "GetByChargeID", mock.Anything, mock.Anything)
}

// Решетка статусов: после refunded поздний charge.paid не откатывает заказ.
func TestWebhookService_LateEventAfterRefund(t *testing.T) {
	mockRepo, _, _, svc := setupWebhook(t)

	order := processingOrder("ch_123")
	order.PaymentStatus = models.StatusRefunded

	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_1", "charge.paid").Return(true, nil)
	mockRepo.On("GetByChargeID", mock.Anything, "ch_123").Return(order, nil)

	err := svc.HandleGatewayEvent(context.Background(), paidEvent("ch_123"))

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Возврат после оплаты — разрешенный переход.
func TestWebhookService_RefundAfterPaid(t *testing.T) {
	mockRepo, mockPublisher, mockCache, svc := setupWebhook(t)

	order := processingOrder("ch_123")
	order.PaymentStatus = models.StatusPaid

	event := models.WebhookEvent{
		ID:   "evt_4",
		Type: "charge.refunded",
		Data: models.WebhookData{ID: "ch_123"},
	}

	mockRepo.On("ClaimWebhookEvent", mock.Anything, "evt_4", "charge.refunded").Return(true, nil)
	mockRepo.On("GetByChargeID", mock.Anything, "ch_123").Return(order, nil)
	mockRepo.On("SetPaymentStatus", mock.Anything, "order-1", models.StatusRefunded).Return(nil)
	mockCache.On("Delete", "order-1").Return()
	mockPublisher.On("Publish", mock.Anything).Return(nil)

	err := svc.HandleGatewayEvent(context.Background(), event)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// Событие без id все равно реконсилируется: безопасность дает решетка.
func TestWebhookService_NoEventID(t *testing.T) {
	mockRepo, mockPublisher, mockCache, svc := setupWebhook(t)

	event := paidEvent("ch_123")
	event.ID = ""

	mockRepo.On("GetByChargeID", mock.Anything, "ch_123").Return(processingOrder("ch_123"), nil)
	mockRepo.On("SetPaymentStatus", mock.Anything, "order-1", models.StatusPaid).Return(nil)
	mockCache.On("Delete", "order-1").Return()
	mockPublisher.On("Publish", mock.Anything).Return(nil)

	err := svc.HandleGatewayEvent(context.Background(), event)

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "ClaimWebhookEvent", mock.Anything, mock.Anything, mock.Anything)
}
