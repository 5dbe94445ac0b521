package payment

import (
	"fmt"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/document"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
)

// Валюта единственная: шлюз работает только с бразильским реалом.
const defaultCurrency = "BRL"

// Код и описание позиции доплаты за пакет слов.
const (
	contentItemCode        = "content"
	contentItemDescription = "Pacote de conteúdo (palavras)"
)

// BuildInput — данные для сборки запроса на списание.
// Total приходит из хранилища заказов и УЖЕ в сентаво: билдер
// никогда не домножает его на 100 (исторический класс дефектов).
type BuildInput struct {
	OrderID       string
	Total         models.Centavos
	Lines         []models.LineItem
	ContentAmount models.Centavos
	Customer      models.Customer
	Method        models.PaymentMethod
}

// BuildChargeRequest собирает запрос к шлюзу из данных заказа и покупателя:
// чистит телефон и документ от нецифровых символов, классифицирует документ,
// добавляет позицию "content" при доплате за слова и сверяет сумму позиций
// с итогом заказа.
func BuildChargeRequest(in BuildInput) (models.ChargeRequest, error) {
	//1. Очистка документа и телефона
	customer := in.Customer
	customer.Document = document.Sanitize(customer.Document)
	customer.Phone = document.Sanitize(customer.Phone)

	//2. Классификация документа по правовому статусу
	cls := document.Classify(customer.LegalStatus)
	customer.DocumentType = cls.DocumentType
	customer.CustomerType = cls.CustomerType

	if !document.Validate(customer.Document, cls.ExpectedDigits) {
		return models.ChargeRequest{}, fmt.Errorf("%w: документ %s должен содержать %d цифр, получено %d",
			ErrValidation, cls.DocumentType, cls.ExpectedDigits, len(customer.Document))
	}

	//3. Для юрлица шлюзу показываем название организации
	if customer.CustomerType == document.CustomerCompany && customer.OrganizationName != "" {
		customer.Name = customer.OrganizationName
	}

	//4. Позиции заказа: по одной на строку плюс доплата за пакет слов
	items := make([]models.LineItem, 0, len(in.Lines)+1)
	items = append(items, in.Lines...)
	if in.ContentAmount > 0 {
		items = append(items, models.LineItem{
			Description: contentItemDescription,
			Amount:      in.ContentAmount,
			Quantity:    1,
			Code:        contentItemCode,
		})
	}

	//5. Сверка: сумма позиций обязана сойтись с итогом заказа
	var sum models.Centavos
	for _, item := range items {
		sum += item.Amount * models.Centavos(item.Quantity)
	}
	if sum != in.Total {
		return models.ChargeRequest{}, fmt.Errorf("%w: позиции дают %d, заказ %s на %d сентаво",
			ErrBuildInconsistency, sum, in.OrderID, in.Total)
	}

	return models.ChargeRequest{
		OrderID:  in.OrderID,
		Amount:   in.Total,
		Currency: defaultCurrency,
		Items:    items,
		Customer: customer,
		Method:   in.Method,
	}, nil
}
