// Package payment содержит сборку запроса к платежному шлюзу
// и классификацию ошибок платежного контура.
package payment

import "errors"

// Таксономия ошибок платежного контура. Проверяются через errors.Is,
// оборачиваются через %w.
var (
	// ErrValidation — некорректные данные покупателя/документа.
	// Показывается пользователю, не ретраится.
	ErrValidation = errors.New("валидация платежных данных не пройдена")

	// ErrBuildInconsistency — сумма позиций разошлась с суммой заказа.
	// Это баг выше по потоку, а не временный сбой: не ретраится.
	ErrBuildInconsistency = errors.New("сумма позиций не совпадает с суммой заказа")

	// ErrGatewayRejected — шлюз отклонил операцию (4xx).
	// Заказ помечается failed, пользователю — "платеж отклонен".
	ErrGatewayRejected = errors.New("платеж отклонен шлюзом")

	// ErrGatewayUnavailable — сеть/5xx/таймаут. Ретраится только
	// токенизация: повтор создания списания может списать деньги дважды.
	ErrGatewayUnavailable = errors.New("платежный шлюз недоступен")

	// ErrReconciliationMiss — вебхук ссылается на неизвестный заказ.
	// Логируется, но шлюзу всегда отвечаем 200.
	ErrReconciliationMiss = errors.New("заказ для события вебхука не найден")

	// ErrOrderNotFound — заказ отсутствует в хранилище.
	ErrOrderNotFound = errors.New("заказ не найден")
)
