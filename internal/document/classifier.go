// Package document — классификация документов покупателя (CPF/CNPJ).
// Чистые функции без I/O: результат зависит только от аргументов.
package document

import "strings"

const (
	TypeCPF  = "cpf"
	TypeCNPJ = "cnpj"

	CustomerIndividual = "individual"
	CustomerCompany    = "company"

	DigitsCPF  = 11
	DigitsCNPJ = 14
)

// Classification — результат классификации: тип документа,
// тип покупателя для шлюза и ожидаемое количество цифр.
type Classification struct {
	DocumentType   string
	CustomerType   string
	ExpectedDigits int
}

// Classify переводит заявленный правовой статус покупателя в тип документа.
// Тотальная функция: неизвестный или пустой статус считается физлицом (CPF) —
// это осознанный выбор политики, а не ошибка.
func Classify(legalStatus string) Classification {
	switch strings.ToLower(strings.TrimSpace(legalStatus)) {
	case "business", "organization", "company", "juridical":
		return Classification{
			DocumentType:   TypeCNPJ,
			CustomerType:   CustomerCompany,
			ExpectedDigits: DigitsCNPJ,
		}
	default:
		return Classification{
			DocumentType:   TypeCPF,
			CustomerType:   CustomerIndividual,
			ExpectedDigits: DigitsCPF,
		}
	}
}

// Validate проверяет, что после очистки документ содержит ровно
// ожидаемое количество цифр. Несовпадение — не ошибка, а false:
// решение о пользовательской ошибке принимает вызывающий код.
func Validate(doc string, expectedDigits int) bool {
	return len(Sanitize(doc)) == expectedDigits
}

// Sanitize убирает из документа все символы, кроме цифр
// (точки, дефисы, слэши CPF/CNPJ, пробелы).
func Sanitize(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
