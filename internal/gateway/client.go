// Package gateway — HTTP-адаптер к платежному шлюзу.
// Прячет формат запросов/ответов шлюза за тремя операциями:
// токенизация карты, списание по токену и создание PIX-списания.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/metric"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/payment"
)

// Время жизни PIX QR-кода на стороне шлюза, секунды.
const pixExpiresIn = 3600

type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient собирает клиента шлюза. timeout ограничивает каждый вызов:
// зависший запрос к шлюзу не должен держать обработчик бесконечно.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		// Шлюз ждет Basic от секретного ключа с пустым паролем
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":")),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ---- формат шлюза ----

type tokenRequest struct {
	Type string    `json:"type"`
	Card tokenCard `json:"card"`
}

type tokenCard struct {
	Number         string        `json:"number"`
	HolderName     string        `json:"holder_name"`
	ExpMonth       int           `json:"exp_month"`
	ExpYear        int           `json:"exp_year"`
	CVV            string        `json:"cvv"`
	BillingAddress *tokenAddress `json:"billing_address,omitempty"`
}

type tokenAddress struct {
	Line1   string `json:"line_1"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type tokenResponse struct {
	ID string `json:"id"`
}

type orderRequest struct {
	Code     string          `json:"code"`
	Items    []orderItem     `json:"items"`
	Customer orderCustomer   `json:"customer"`
	Payments []orderPayment_ `json:"payments"`
}

type orderItem struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"` // всегда в минимальных единицах
	Quantity    int    `json:"quantity"`
}

type orderCustomer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Type     string `json:"type"`     // individual | company
	Document string `json:"document"` // только цифры
	Phones   any    `json:"phones,omitempty"`
}

type orderPayment_ struct {
	PaymentMethod string           `json:"payment_method"`
	CreditCard    *creditCardBlock `json:"credit_card,omitempty"`
	Pix           *pixBlock        `json:"pix,omitempty"`
}

type creditCardBlock struct {
	OperationType string `json:"operation_type"`
	Installments  int    `json:"installments"`
	CardToken     string `json:"card_token"`
}

type pixBlock struct {
	ExpiresIn int `json:"expires_in"`
}

type orderResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Charges []struct {
		ID              string `json:"id"`
		Status          string `json:"status"`
		LastTransaction struct {
			QRCode    string    `json:"qr_code"`
			QRCodeURL string    `json:"qr_code_url"`
			ExpiresAt time.Time `json:"expires_at"`
		} `json:"last_transaction"`
	} `json:"charges"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// TokenizeCard меняет данные карты на одноразовый токен.
// Деньги на этом шаге не двигаются, поэтому вызывающий код может
// ограниченно ретраить ErrGatewayUnavailable.
func (c *Client) TokenizeCard(ctx context.Context, card models.CardDetails) (string, error) {
	body := tokenRequest{
		Type: "card",
		Card: tokenCard{
			Number:     card.Number,
			HolderName: card.HolderName,
			ExpMonth:   card.ExpMonth,
			ExpYear:    card.ExpYear,
			CVV:        card.CVV,
		},
	}
	if card.BillingAddress != (models.Address{}) {
		body.Card.BillingAddress = &tokenAddress{
			Line1:   card.BillingAddress.Line1,
			ZipCode: card.BillingAddress.ZipCode,
			City:    card.BillingAddress.City,
			State:   card.BillingAddress.State,
			Country: card.BillingAddress.Country,
		}
	}

	raw, err := c.post(ctx, "tokenize", "/tokens", body)
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: не удалось разобрать ответ токенизации: %v", payment.ErrGatewayUnavailable, err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: шлюз не вернул токен", payment.ErrGatewayUnavailable)
	}
	return resp.ID, nil
}

// ChargeCard создает списание по токену карты. Внутри клиента ретраев нет:
// повтор создания списания может списать деньги дважды.
func (c *Client) ChargeCard(ctx context.Context, req models.ChargeRequest) (models.GatewayChargeResult, error) {
	body := c.buildOrder(req)
	body.Payments = []orderPayment_{{
		PaymentMethod: "credit_card",
		CreditCard: &creditCardBlock{
			OperationType: "auth_and_capture",
			Installments:  1,
			CardToken:     req.CardToken,
		},
	}}

	raw, err := c.post(ctx, "charge_card", "/orders", body)
	if err != nil {
		return models.GatewayChargeResult{}, err
	}
	return parseChargeResult(raw)
}

// ChargePix создает PIX-списание: шлюз выпускает QR-код под конкретный заказ.
func (c *Client) ChargePix(ctx context.Context, req models.ChargeRequest) (models.GatewayChargeResult, error) {
	body := c.buildOrder(req)
	body.Payments = []orderPayment_{{
		PaymentMethod: "pix",
		Pix:           &pixBlock{ExpiresIn: pixExpiresIn},
	}}

	raw, err := c.post(ctx, "charge_pix", "/orders", body)
	if err != nil {
		return models.GatewayChargeResult{}, err
	}
	return parseChargeResult(raw)
}

func (c *Client) buildOrder(req models.ChargeRequest) orderRequest {
	items := make([]orderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderItem{
			Code:        item.Code,
			Description: item.Description,
			Amount:      int64(item.Amount), // уже в сентаво, без пересчета
			Quantity:    item.Quantity,
		})
	}
	return orderRequest{
		Code:  req.OrderID,
		Items: items,
		Customer: orderCustomer{
			Name:     req.Customer.Name,
			Email:    req.Customer.Email,
			Type:     req.Customer.CustomerType,
			Document: req.Customer.Document,
		},
	}
}

// post выполняет один HTTP-вызов и классифицирует результат:
// 2xx — тело ответа, 4xx — ErrGatewayRejected, 5xx/сеть/таймаут —
// ErrGatewayUnavailable.
func (c *Client) post(ctx context.Context, operation, path string, body any) ([]byte, error) {
	start := time.Now()

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ошибка при сериализации запроса %s: %w", operation, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании запроса %s: %w", operation, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Сетевые ошибки и таймауты: исход неизвестен
		metric.GatewayRequestsTotal.WithLabelValues(operation, "unavailable").Inc()
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metric.GatewayRequestsTotal.WithLabelValues(operation, "unavailable").Inc()
		return nil, fmt.Errorf("%w: ошибка чтения ответа: %v", payment.ErrGatewayUnavailable, err)
	}

	metric.GatewayDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		metric.GatewayRequestsTotal.WithLabelValues(operation, "success").Inc()
		return raw, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		metric.GatewayRequestsTotal.WithLabelValues(operation, "rejected").Inc()
		var gwErr errorResponse
		_ = json.Unmarshal(raw, &gwErr)
		return nil, fmt.Errorf("%w: %d %s", payment.ErrGatewayRejected, resp.StatusCode, gwErr.Message)
	default:
		metric.GatewayRequestsTotal.WithLabelValues(operation, "unavailable").Inc()
		return nil, fmt.Errorf("%w: статус %d", payment.ErrGatewayUnavailable, resp.StatusCode)
	}
}

func parseChargeResult(raw []byte) (models.GatewayChargeResult, error) {
	var resp orderResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.GatewayChargeResult{}, fmt.Errorf("%w: не удалось разобрать ответ шлюза: %v", payment.ErrGatewayUnavailable, err)
	}
	if len(resp.Charges) == 0 {
		return models.GatewayChargeResult{}, fmt.Errorf("%w: ответ шлюза без charges", payment.ErrGatewayUnavailable)
	}

	charge := resp.Charges[0]
	return models.GatewayChargeResult{
		GatewayOrderID:  resp.ID,
		GatewayChargeID: charge.ID,
		Status:          statusFromGateway(charge.Status),
		QRCode:          charge.LastTransaction.QRCode,
		QRCodeURL:       charge.LastTransaction.QRCodeURL,
		QRCodeExpiry:    charge.LastTransaction.ExpiresAt,
		Raw:             json.RawMessage(raw),
	}, nil
}

// statusFromGateway переводит статусы шлюза в наши.
// Незнакомый статус трактуем как processing: авторитетный статус
// все равно принесет вебхук.
func statusFromGateway(s string) models.PaymentStatus {
	switch s {
	case "paid":
		return models.StatusPaid
	case "processing":
		return models.StatusProcessing
	case "pending", "waiting_payment":
		return models.StatusPendingPayment
	case "failed", "canceled":
		return models.StatusFailed
	default:
		return models.StatusProcessing
	}
}
