package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
)

// PaymentEventProducer публикует события смены платежного статуса.
// Их читает пайплайн уведомлений (письма покупателю, вебхуки продавцу) —
// он живет вне этого сервиса.
type PaymentEventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(broker []string, topic string) (*PaymentEventProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll // Ждем подтверждения от всех брокеров

	producer, err := sarama.NewSyncProducer(broker, config)
	if err != nil {
		return &PaymentEventProducer{}, fmt.Errorf("не удалось создать продюсера: %v", err)
	}
	return &PaymentEventProducer{
		producer: producer,
		topic:    topic,
	}, nil
}

// Publish отправляет событие в топик. Ключ — id заказа, чтобы события
// одного заказа попадали в одну партицию и читались по порядку.
func (pr *PaymentEventProducer) Publish(event models.PaymentStatusEvent) error {
	//1. Сериализация события
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации события: %v", err)
	}
	//2. Создание сообщения
	message := &sarama.ProducerMessage{
		Topic: pr.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(data),
	}
	//3. Отправка сообщения в кафку
	if _, _, err := pr.producer.SendMessage(message); err != nil {
		return fmt.Errorf("ошибка при отправке события в кафку: %v", err)
	}
	return nil
}

func (pr *PaymentEventProducer) Close() error {
	return pr.producer.Close()
}
