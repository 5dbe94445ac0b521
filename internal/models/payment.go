// Package models содержит описания структур данных (DTO),
// которые используются во всем приложении и для маппинга JSON/DB.
package models

import (
	"encoding/json"
	"time"
)

// Centavos — денежная сумма в минимальных единицах валюты (сентаво).
// Отдельный тип, чтобы на уровне компилятора нельзя было перепутать
// сумму в минимальных единицах с суммой в "больших" (реалах).
type Centavos int64

// PaymentMethod — способ оплаты, который выбрал покупатель.
type PaymentMethod string

const (
	MethodCard PaymentMethod = "credit_card"
	MethodPix  PaymentMethod = "pix"
)

// PaymentStatus — статус оплаты заказа.
type PaymentStatus string

const (
	StatusPending        PaymentStatus = "pending"
	StatusProcessing     PaymentStatus = "processing"
	StatusPendingPayment PaymentStatus = "pending_payment" // PIX: ждем оплату по QR-коду
	StatusPaid           PaymentStatus = "paid"
	StatusFailed         PaymentStatus = "failed"
	StatusRefunded       PaymentStatus = "refunded"
)

// rank задает порядок статусов в решетке: двигаться можно только вперед.
func (s PaymentStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusProcessing, StatusPendingPayment:
		return 1
	case StatusPaid:
		return 2
	case StatusFailed, StatusRefunded:
		return 3
	default:
		return -1
	}
}

// CanTransitionTo проверяет, что переход не откатывает статус назад.
// Повторное применение того же статуса — не переход (идемпотентный повтор).
// После paid возможен только refunded, терминальные ветки не покидаются.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case StatusFailed, StatusRefunded:
		return false
	case StatusPaid:
		return next == StatusRefunded
	default:
		return next.rank() > s.rank()
	}
}

// Terminal — достигнут ли статус, из которого нет переходов вперед по решетке.
func (s PaymentStatus) Terminal() bool {
	return s == StatusFailed || s == StatusRefunded
}

// Customer содержит данные покупателя в том виде, в котором они
// уходят на платежный шлюз.
type Customer struct {
	Name             string `json:"name" validate:"required,min=2"`
	Email            string `json:"email" validate:"required,email"`
	Document         string `json:"document" validate:"required"`
	LegalStatus      string `json:"legal_status"`
	OrganizationName string `json:"organization_name"`
	Phone            string `json:"phone"`
	// Заполняются билдером по результату классификации документа.
	DocumentType string `json:"document_type" validate:"omitempty,oneof=cpf cnpj"`
	CustomerType string `json:"customer_type" validate:"omitempty,oneof=individual company"`
}

// LineItem — одна позиция заказа. Amount — цена за единицу в сентаво.
type LineItem struct {
	Description string   `json:"description" validate:"required"`
	Amount      Centavos `json:"amount" validate:"gt=0"`
	Quantity    int      `json:"quantity" validate:"gt=0"`
	Code        string   `json:"code" validate:"required"`
}

// ChargeRequest — собранный билдером запрос на списание.
// Инвариант: сумма позиций (Amount*Quantity) равна Amount запроса.
type ChargeRequest struct {
	OrderID   string        `json:"order_id" validate:"required"`
	Amount    Centavos      `json:"amount" validate:"gt=0"`
	Currency  string        `json:"currency" validate:"required,len=3"`
	Items     []LineItem    `json:"items" validate:"required,gt=0,dive"`
	Customer  Customer      `json:"customer" validate:"required"`
	Method    PaymentMethod `json:"payment_method" validate:"required,oneof=credit_card pix"`
	CardToken string        `json:"card_token,omitempty"`
}

// CardDetails — данные карты для токенизации. Дальше билдера и клиента
// шлюза не живут и нигде не сохраняются.
type CardDetails struct {
	Number         string  `json:"number" validate:"required"`
	HolderName     string  `json:"holder_name" validate:"required"`
	ExpMonth       int     `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear        int     `json:"exp_year" validate:"required"`
	CVV            string  `json:"cvv" validate:"required"`
	BillingAddress Address `json:"billing_address"`
}

// Address — платежный адрес держателя карты.
type Address struct {
	Line1   string `json:"line_1"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// GatewayChargeResult — синхронный ответ шлюза на создание списания.
// Неизменяемый после создания. Raw — ответ шлюза байт в байт; оркестратор
// пишет его в журнал для аудита, наружу в JSON он не сериализуется.
type GatewayChargeResult struct {
	GatewayOrderID  string          `json:"gateway_order_id"`
	GatewayChargeID string          `json:"gateway_charge_id"`
	Status          PaymentStatus   `json:"status"`
	QRCode          string          `json:"qr_code,omitempty"`
	QRCodeURL       string          `json:"qr_code_url,omitempty"`
	QRCodeExpiry    time.Time       `json:"qr_code_expiry,omitempty"`
	Raw             json.RawMessage `json:"-"`
}

// WebhookEvent — событие, которое шлюз доставляет на наш вебхук.
// Доставка at-least-once: событие может прийти повторно и не по порядку.
type WebhookEvent struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}

// WebhookData — полезная нагрузка события, нам важен только id списания.
type WebhookData struct {
	ID string `json:"id"`
}

// OrderPayment — платежное состояние заказа, одна строка в таблице orders.
// PaymentID пустой, пока оркестратор не привязал id списания.
type OrderPayment struct {
	OrderID       string        `json:"order_id"`
	CustomerID    string        `json:"customer_id"`
	Total         Centavos      `json:"total"`
	PaymentID     string        `json:"payment_id,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CheckoutRequest — тело запроса POST /checkout/pay.
type CheckoutRequest struct {
	OrderID       string        `json:"order_id" validate:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=credit_card pix"`
	Customer      Customer      `json:"customer" validate:"required"`
	Card          *CardDetails  `json:"card,omitempty"`
	Items         []LineItem    `json:"items" validate:"required,gt=0,dive"`
	// Доплата за пакет слов ("content"), 0 — если доплаты нет.
	ContentAmount Centavos `json:"content_amount" validate:"min=0"`
}

// CheckoutResult — ответ на успешный запрос оплаты.
// Для PIX дополнительно содержит QR-код и срок его действия.
type CheckoutResult struct {
	OrderID       string        `json:"order_id"`
	PaymentID     string        `json:"payment_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	QRCode        string        `json:"qr_code,omitempty"`
	QRCodeURL     string        `json:"qr_code_url,omitempty"`
	QRCodeExpiry  time.Time     `json:"qr_code_expiry,omitempty"`
}

// PaymentStatusEvent — сообщение в Kafka о смене платежного статуса.
// Его слушает пайплайн уведомлений (вне этого сервиса).
type PaymentStatusEvent struct {
	OrderID    string        `json:"order_id"`
	ChargeID   string        `json:"charge_id"`
	Status     PaymentStatus `json:"status"`
	OccurredAt time.Time     `json:"occurred_at"`
}
