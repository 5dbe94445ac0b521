package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/metric"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/payment"
)

// OrderPaymentRepository — хранилище платежного состояния заказов.
// Все операции — одиночные однострочные запросы: состояние каждого
// заказа независимо, многострочные транзакции не нужны.
type OrderPaymentRepository struct {
	db *sql.DB
}

func NewOrderPaymentRepository(db *sql.DB) *OrderPaymentRepository {
	return &OrderPaymentRepository{db: db}
}

// GetByOrderID возвращает платежное состояние заказа по внутреннему id.
func (r *OrderPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (models.OrderPayment, error) {
	return r.get(ctx, "order_id", orderID)
}

// GetByChargeID возвращает заказ по id списания на шлюзе.
// Именно так реконсилиатор находит заказ для вебхука.
func (r *OrderPaymentRepository) GetByChargeID(ctx context.Context, chargeID string) (models.OrderPayment, error) {
	return r.get(ctx, "payment_id", chargeID)
}

func (r *OrderPaymentRepository) get(ctx context.Context, column, value string) (models.OrderPayment, error) {
	start := time.Now()

	var order models.OrderPayment
	var paymentID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT order_id, customer_id, total, payment_id, payment_status, updated_at
           FROM orders WHERE `+column+` = $1`,
		value).Scan(&order.OrderID, &order.CustomerID, &order.Total, &paymentID, &order.PaymentStatus, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metric.DbOperationsTotal.WithLabelValues("get", "not_found").Inc()
			return models.OrderPayment{}, fmt.Errorf("%w: %s=%s", payment.ErrOrderNotFound, column, value)
		}
		metric.DbOperationsTotal.WithLabelValues("get", "error").Inc()
		return models.OrderPayment{}, fmt.Errorf("ошибка при получении заказа по %s: %w", column, err)
	}
	order.PaymentID = paymentID.String

	metric.DbOperationsTotal.WithLabelValues("get", "success").Inc()
	metric.DbDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	return order, nil
}

// AttachPaymentID — первая запись оркестратора: привязывает id списания
// и начальный ("оптимистичный") статус из синхронного ответа шлюза.
func (r *OrderPaymentRepository) AttachPaymentID(ctx context.Context, orderID, chargeID string, status models.PaymentStatus) error {
	start := time.Now()

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_id = $2, payment_status = $3, updated_at = now() WHERE order_id = $1`,
		orderID, chargeID, status)
	if err != nil {
		metric.DbOperationsTotal.WithLabelValues("attach_payment", "error").Inc()
		return fmt.Errorf("ошибка при привязке payment_id к заказу %s: %w", orderID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		metric.DbOperationsTotal.WithLabelValues("attach_payment", "not_found").Inc()
		return fmt.Errorf("%w: %s", payment.ErrOrderNotFound, orderID)
	}

	metric.DbOperationsTotal.WithLabelValues("attach_payment", "success").Inc()
	metric.DbDuration.WithLabelValues("attach_payment").Observe(time.Since(start).Seconds())
	return nil
}

// SetPaymentStatus обновляет статус оплаты заказа. Однострочный UPDATE,
// атомарность строки дает вся нужная от БД гарантия.
func (r *OrderPaymentRepository) SetPaymentStatus(ctx context.Context, orderID string, status models.PaymentStatus) error {
	start := time.Now()

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = $2, updated_at = now() WHERE order_id = $1`,
		orderID, status)
	if err != nil {
		metric.DbOperationsTotal.WithLabelValues("set_status", "error").Inc()
		return fmt.Errorf("ошибка при обновлении статуса заказа %s: %w", orderID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		metric.DbOperationsTotal.WithLabelValues("set_status", "not_found").Inc()
		return fmt.Errorf("%w: %s", payment.ErrOrderNotFound, orderID)
	}

	metric.DbOperationsTotal.WithLabelValues("set_status", "success").Inc()
	metric.DbDuration.WithLabelValues("set_status").Observe(time.Since(start).Seconds())
	return nil
}

// ClaimWebhookEvent атомарно регистрирует событие вебхука.
// Возвращает false, если событие с таким id уже обрабатывалось:
// проверка и захват — один INSERT, гонка между повторными доставками исключена.
func (r *OrderPaymentRepository) ClaimWebhookEvent(ctx context.Context, eventID, eventType string) (bool, error) {
	start := time.Now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO webhook_events (event_id, event_type, received_at)
         VALUES ($1, $2, now())
         ON CONFLICT (event_id) DO NOTHING`,
		eventID, eventType)
	if err != nil {
		metric.DbOperationsTotal.WithLabelValues("claim_event", "error").Inc()
		return false, fmt.Errorf("ошибка при регистрации события %s: %w", eventID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при регистрации события %s: %w", eventID, err)
	}

	metric.DbOperationsTotal.WithLabelValues("claim_event", "success").Inc()
	metric.DbDuration.WithLabelValues("claim_event").Observe(time.Since(start).Seconds())
	return n == 1, nil
}

// ReleaseWebhookEvent снимает регистрацию события, захваченного
// ClaimWebhookEvent. Вызывается, когда статус применить не удалось:
// повторная доставка того же события должна пройти дедупликацию заново.
func (r *OrderPaymentRepository) ReleaseWebhookEvent(ctx context.Context, eventID string) error {
	start := time.Now()

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM webhook_events WHERE event_id = $1`, eventID)
	if err != nil {
		metric.DbOperationsTotal.WithLabelValues("release_event", "error").Inc()
		return fmt.Errorf("ошибка при освобождении события %s: %w", eventID, err)
	}

	metric.DbOperationsTotal.WithLabelValues("release_event", "success").Inc()
	metric.DbDuration.WithLabelValues("release_event").Observe(time.Since(start).Seconds())
	return nil
}
