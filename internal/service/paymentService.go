// Package service содержит бизнес-логику платежного контура:
// оркестрацию оплаты заказа и реконсилиацию по вебхукам шлюза.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/logger/sl"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/metric"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/payment"
)

// Сколько всего попыток токенизации при недоступном шлюзе.
// Токен не двигает деньги, поэтому повтор безопасен.
const tokenizeAttempts = 3

// OrderPaymentRepository описывает контракт хранилища платежного состояния.
// Он абстрагирует логику работы с базой данных от бизнес-логики сервиса.
//
//go:generate mockery --name=OrderPaymentRepository --output=./mocks --case=underscore
type OrderPaymentRepository interface {
	GetByOrderID(ctx context.Context, orderID string) (models.OrderPayment, error)
	GetByChargeID(ctx context.Context, chargeID string) (models.OrderPayment, error)
	AttachPaymentID(ctx context.Context, orderID, chargeID string, status models.PaymentStatus) error
	SetPaymentStatus(ctx context.Context, orderID string, status models.PaymentStatus) error
	ClaimWebhookEvent(ctx context.Context, eventID, eventType string) (bool, error)
	ReleaseWebhookEvent(ctx context.Context, eventID string) error
}

// PaymentGateway — контракт клиента платежного шлюза.
//
//go:generate mockery --name=PaymentGateway --output=./mocks --case=underscore
type PaymentGateway interface {
	TokenizeCard(ctx context.Context, card models.CardDetails) (string, error)
	ChargeCard(ctx context.Context, req models.ChargeRequest) (models.GatewayChargeResult, error)
	ChargePix(ctx context.Context, req models.ChargeRequest) (models.GatewayChargeResult, error)
}

// EventPublisher — контракт публикации событий смены статуса.
//
//go:generate mockery --name=EventPublisher --output=./mocks --case=underscore
type EventPublisher interface {
	Publish(event models.PaymentStatusEvent) error
}

// PaymentStateCache — контракт кеша платежных состояний.
//
//go:generate mockery --name=PaymentStateCache --output=./mocks --case=underscore
type PaymentStateCache interface {
	Set(orderID string, order *models.OrderPayment)
	Get(orderID string) (*models.OrderPayment, bool)
	Delete(orderID string)
}

// PaymentService ведет одну попытку оплаты от сборки запроса до записи
// начального статуса: build -> tokenize (карта) -> charge -> persist.
// Шаги строго последовательны, параллелизма внутри попытки нет.
type PaymentService struct {
	repo      OrderPaymentRepository
	gateway   PaymentGateway
	publisher EventPublisher
	cache     PaymentStateCache
	validate  *validator.Validate
}

func NewPaymentService(repo OrderPaymentRepository, gw PaymentGateway, publisher EventPublisher, cache PaymentStateCache) *PaymentService {
	return &PaymentService{
		repo:      repo,
		gateway:   gw,
		publisher: publisher,
		cache:     cache,
		validate:  validator.New(),
	}
}

// Pay проводит оплату заказа выбранным способом.
//
// Исход по ошибкам шлюза:
//   - ErrGatewayRejected — заказ сразу помечается failed, пользователю
//     возвращается "платеж отклонен";
//   - ErrGatewayUnavailable на списании — заказ остается pending без
//     payment_id, чтобы повтор пользователя создал свежую попытку,
//     а не столкнулся с неизвестным зависшим списанием. Автоповтора нет:
//     исход списания неизвестен, повтор может списать деньги дважды.
func (s *PaymentService) Pay(ctx context.Context, req models.CheckoutRequest) (models.CheckoutResult, error) {
	tr := otel.Tracer("paymentService")
	ctx, span := tr.Start(ctx, "Service.Pay")
	defer span.End()
	span.SetAttributes(
		attribute.String("order_id", req.OrderID),
		attribute.String("payment_method", string(req.PaymentMethod)),
	)

	//1. Читаем заказ: итог берем только из хранилища
	order, err := s.repo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		span.RecordError(err)
		return models.CheckoutResult{}, err
	}

	// Оплачивать можно pending-заказ или повтор после отказа
	if order.PaymentStatus != models.StatusPending && order.PaymentStatus != models.StatusFailed {
		return models.CheckoutResult{}, fmt.Errorf("%w: заказ %s уже в статусе %s",
			payment.ErrValidation, order.OrderID, order.PaymentStatus)
	}

	//2. Сборка запроса к шлюзу
	chargeReq, err := payment.BuildChargeRequest(payment.BuildInput{
		OrderID:       order.OrderID,
		Total:         order.Total,
		Lines:         req.Items,
		ContentAmount: req.ContentAmount,
		Customer:      req.Customer,
		Method:        req.PaymentMethod,
	})
	if err != nil {
		span.RecordError(err)
		return models.CheckoutResult{}, err
	}

	//3. Валидация собранного запроса до любого похода на шлюз
	if err := s.validate.Struct(&chargeReq); err != nil {
		return models.CheckoutResult{}, fmt.Errorf("%w: %v", payment.ErrValidation, err)
	}

	//4. Для карты: токенизация с ограниченным повтором
	if req.PaymentMethod == models.MethodCard {
		if req.Card == nil {
			return models.CheckoutResult{}, fmt.Errorf("%w: для оплаты картой нужны данные карты", payment.ErrValidation)
		}
		token, err := s.tokenizeWithRetry(ctx, *req.Card)
		if err != nil {
			span.RecordError(err)
			return models.CheckoutResult{}, err
		}
		chargeReq.CardToken = token
		span.AddEvent("карта токенизирована")
	}

	//5. Создание списания (без ретраев!)
	var result models.GatewayChargeResult
	if req.PaymentMethod == models.MethodPix {
		result, err = s.gateway.ChargePix(ctx, chargeReq)
	} else {
		result, err = s.gateway.ChargeCard(ctx, chargeReq)
	}
	if err != nil {
		span.RecordError(err)
		return models.CheckoutResult{}, s.settleChargeFailure(ctx, order, err)
	}
	span.AddEvent("списание создано на шлюзе")

	// Сырой ответ шлюза уходит в журнал как аудиторский след списания:
	// в строку заказа он не пишется, журнал — единственное место хранения
	slog.Info("ответ шлюза на создание списания",
		slog.String("order_id", order.OrderID),
		slog.String("charge_id", result.GatewayChargeID),
		slog.String("raw", string(result.Raw)), sl.Traced(ctx))

	//6. Первая запись: привязываем payment_id и "оптимистичный" статус.
	// Авторитетный финальный статус позже принесет вебхук.
	if err := s.repo.AttachPaymentID(ctx, order.OrderID, result.GatewayChargeID, result.Status); err != nil {
		span.RecordError(err)
		return models.CheckoutResult{}, err
	}

	order.PaymentID = result.GatewayChargeID
	order.PaymentStatus = result.Status
	order.UpdatedAt = time.Now()
	s.cache.Set(order.OrderID, &order)
	s.publishStatus(ctx, order.OrderID, result.GatewayChargeID, result.Status)

	return models.CheckoutResult{
		OrderID:       order.OrderID,
		PaymentID:     result.GatewayChargeID,
		PaymentStatus: result.Status,
		QRCode:        result.QRCode,
		QRCodeURL:     result.QRCodeURL,
		QRCodeExpiry:  result.QRCodeExpiry,
	}, nil
}

// GetPaymentStatus отвечает на опрос статуса с фронта.
// Читаем только свое хранилище, не шлюз: фронт не должен увидеть "paid"
// раньше, чем его применит реконсилиатор.
func (s *PaymentService) GetPaymentStatus(ctx context.Context, orderID string) (models.OrderPayment, error) {
	tr := otel.Tracer("paymentService")
	ctx, span := tr.Start(ctx, "Service.GetPaymentStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order_id", orderID))

	//1. Поиск в кеше
	if fromCache, ok := s.cache.Get(orderID); ok {
		metric.CacheHitsTotal.WithLabelValues("hit").Inc()
		return *fromCache, nil
	}
	metric.CacheHitsTotal.WithLabelValues("miss").Inc()

	//2. Возвращаем из БД, пробрасывая контекст
	found, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return models.OrderPayment{}, err
	}

	//3. Нашли в БД, обновляем кеш
	s.cache.Set(orderID, &found)
	return found, nil
}

// tokenizeWithRetry повторяет токенизацию только при недоступности шлюза:
// до выпуска токена деньги не двигались. Отказ шлюза (4xx) не ретраится.
func (s *PaymentService) tokenizeWithRetry(ctx context.Context, card models.CardDetails) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= tokenizeAttempts; attempt++ {
		token, err := s.gateway.TokenizeCard(ctx, card)
		if err == nil {
			return token, nil
		}
		lastErr = err
		if !errors.Is(err, payment.ErrGatewayUnavailable) {
			return "", err
		}
		slog.Warn("токенизация не удалась, пробуем еще раз",
			slog.Int("attempt", attempt), slog.Any("error", err), sl.Traced(ctx))
	}
	return "", lastErr
}

// settleChargeFailure фиксирует исход неудавшегося списания.
// Отказ шлюза — терминальный failed; недоступность — заказ не трогаем,
// он остается pending без payment_id.
func (s *PaymentService) settleChargeFailure(ctx context.Context, order models.OrderPayment, chargeErr error) error {
	if !errors.Is(chargeErr, payment.ErrGatewayRejected) {
		return chargeErr
	}

	if err := s.repo.SetPaymentStatus(ctx, order.OrderID, models.StatusFailed); err != nil {
		slog.Error("не удалось пометить заказ failed после отказа шлюза",
			slog.String("order_id", order.OrderID), slog.Any("error", err), sl.Traced(ctx))
		return chargeErr
	}
	s.cache.Delete(order.OrderID)
	s.publishStatus(ctx, order.OrderID, order.PaymentID, models.StatusFailed)
	return chargeErr
}

// publishStatus шлет событие в Kafka. Ошибка публикации не валит платеж:
// хранилище уже обновлено, уведомления догонят по следующему событию.
func (s *PaymentService) publishStatus(ctx context.Context, orderID, chargeID string, status models.PaymentStatus) {
	event := models.PaymentStatusEvent{
		OrderID:    orderID,
		ChargeID:   chargeID,
		Status:     status,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(event); err != nil {
		slog.Error("не удалось отправить событие смены статуса",
			slog.String("order_id", orderID), slog.Any("error", err), sl.Traced(ctx))
	}
}
