package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/logger/sl"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/metric"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/payment"
)

// WebhookService реконсилирует платежное состояние заказов по событиям
// шлюза. Доставка at-least-once: события приходят повторно, не по порядку
// или не приходят вовсе — сервис обязан это переживать.
type WebhookService struct {
	repo      OrderPaymentRepository
	publisher EventPublisher
	cache     PaymentStateCache
}

func NewWebhookService(repo OrderPaymentRepository, publisher EventPublisher, cache PaymentStateCache) *WebhookService {
	return &WebhookService{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
	}
}

// statusForEvent — закрытый словарь типов событий. ok=false означает
// "осознанно игнорируем": событие подтверждаем, состояние не трогаем.
func statusForEvent(eventType string) (models.PaymentStatus, bool) {
	switch eventType {
	case "charge.paid", "order.paid":
		return models.StatusPaid, true
	case "charge.payment_failed":
		return models.StatusFailed, true
	case "charge.refunded":
		return models.StatusRefunded, true
	default:
		return "", false
	}
}

// HandleGatewayEvent обрабатывает одно событие вебхука.
//
// Возвращенная ошибка — только для логирования: хендлер в любом случае
// отвечает шлюзу 200, иначе шлюз устроит шторм повторных доставок.
//
// Алгоритм: дедупликация по id события -> маппинг типа -> нормализация
// id списания -> поиск заказа -> переход по решетке статусов.
// Если статус так и не применился (заказ не найден, БД отказала),
// регистрация события снимается: следующая доставка шлюза получает
// полноценную попытку, а не отлетает как "дубликат".
func (s *WebhookService) HandleGatewayEvent(ctx context.Context, event models.WebhookEvent) error {
	tr := otel.Tracer("webhookService")
	ctx, span := tr.Start(ctx, "Service.HandleGatewayEvent")
	defer span.End()
	span.SetAttributes(attribute.String("event_type", event.Type))

	//1. Дедупликация: повторная доставка того же события — no-op
	claimed := false
	if event.ID != "" {
		ok, err := s.repo.ClaimWebhookEvent(ctx, event.ID, event.Type)
		if err != nil {
			span.RecordError(err)
			metric.WebhookEventsTotal.WithLabelValues(event.Type, "error").Inc()
			return err
		}
		if !ok {
			metric.WebhookEventsTotal.WithLabelValues(event.Type, "duplicate").Inc()
			slog.Info("событие уже обрабатывалось, пропускаем",
				slog.String("event_id", event.ID), sl.Traced(ctx))
			return nil
		}
		claimed = true
	}

	//2. Только известные типы событий двигают статус
	target, ok := statusForEvent(event.Type)
	if !ok {
		metric.WebhookEventsTotal.WithLabelValues(event.Type, "ignored").Inc()
		slog.Info("тип события не обрабатывается, подтверждаем и игнорируем",
			slog.String("event_type", event.Type), sl.Traced(ctx))
		return nil
	}

	//3. Нормализация id списания: шлюз иногда присылает его с пробелами
	chargeID := strings.TrimSpace(event.Data.ID)
	if chargeID == "" {
		metric.WebhookEventsTotal.WithLabelValues(event.Type, "ignored").Inc()
		return nil
	}
	span.SetAttributes(attribute.String("charge_id", chargeID))

	//4. Поиск заказа по id списания
	order, err := s.repo.GetByChargeID(ctx, chargeID)
	if err != nil {
		if errors.Is(err, payment.ErrOrderNotFound) {
			// Вебхук мог обогнать привязку payment_id оркестратором,
			// а заказ может принадлежать другому окружению. Снимаем
			// регистрацию: повторную доставку нельзя терять как дубликат
			s.releaseClaim(ctx, claimed, event.ID)
			metric.WebhookEventsTotal.WithLabelValues(event.Type, "miss").Inc()
			slog.Warn("заказ для события вебхука не найден",
				slog.String("charge_id", chargeID), sl.Traced(ctx))
			return payment.ErrReconciliationMiss
		}
		s.releaseClaim(ctx, claimed, event.ID)
		span.RecordError(err)
		metric.WebhookEventsTotal.WithLabelValues(event.Type, "error").Inc()
		return err
	}

	//5. Переход по решетке: назад не откатываемся
	if order.PaymentStatus == target {
		// Статус уже применен — идемпотентный повтор
		metric.WebhookEventsTotal.WithLabelValues(event.Type, "duplicate").Inc()
		return nil
	}
	if !order.PaymentStatus.CanTransitionTo(target) {
		metric.WebhookEventsTotal.WithLabelValues(event.Type, "skipped").Inc()
		slog.Warn("переход статуса отклонен решеткой",
			slog.String("order_id", order.OrderID),
			slog.String("from", string(order.PaymentStatus)),
			slog.String("to", string(target)), sl.Traced(ctx))
		return nil
	}

	//6. Применяем статус и оповещаем
	if err := s.repo.SetPaymentStatus(ctx, order.OrderID, target); err != nil {
		s.releaseClaim(ctx, claimed, event.ID)
		span.RecordError(err)
		metric.WebhookEventsTotal.WithLabelValues(event.Type, "error").Inc()
		return err
	}
	span.AddEvent("статус заказа обновлен")

	s.cache.Delete(order.OrderID)
	if err := s.publisher.Publish(models.PaymentStatusEvent{
		OrderID:    order.OrderID,
		ChargeID:   chargeID,
		Status:     target,
		OccurredAt: time.Now(),
	}); err != nil {
		slog.Error("не удалось отправить событие смены статуса",
			slog.String("order_id", order.OrderID), slog.Any("error", err), sl.Traced(ctx))
	}

	metric.WebhookEventsTotal.WithLabelValues(event.Type, "processed").Inc()
	slog.Info("статус заказа реконсилирован",
		slog.String("order_id", order.OrderID),
		slog.String("status", string(target)), sl.Traced(ctx))
	return nil
}

// releaseClaim снимает регистрацию события, если статус не применился.
// Игнорируемые типы и отклоненные решеткой переходы регистрацию не снимают:
// для них повторная доставка ничего не изменит.
func (s *WebhookService) releaseClaim(ctx context.Context, claimed bool, eventID string) {
	if !claimed {
		return
	}
	if err := s.repo.ReleaseWebhookEvent(ctx, eventID); err != nil {
		slog.Error("не удалось освободить событие вебхука",
			slog.String("event_id", eventID), slog.Any("error", err), sl.Traced(ctx))
	}
}
