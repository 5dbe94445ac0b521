package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/app"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/cache"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/config"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/db/conn"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/db/repository"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/gateway"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/handler"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/kafka"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/service"
)

type Application struct {
	srv      *app.Server
	producer *kafka.PaymentEventProducer
	cache    *cache.PaymentCache
}

func NewApplication(cfg *config.Config) (*Application, error) {
	// 3. Подключение к БД
	dbConn, err := conn.Connection(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("подключение к БД: %w", err)
	}

	if err = kafka.EnsureTopicExists(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic); err != nil {
		return nil, fmt.Errorf("создание Kafka topic: %w", err)
	}

	producer, err := kafka.NewProducer(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic)
	if err != nil {
		return nil, fmt.Errorf("создание Kafka Producer: %w", err)
	}

	// 4. Сборка слоев
	paymentCache := cache.NewPaymentCache(1*time.Minute, 30*time.Second)
	orderRepo := repository.NewOrderPaymentRepository(dbConn)
	gatewayClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.SecretKey, cfg.Gateway.Timeout)
	paymentService := service.NewPaymentService(orderRepo, gatewayClient, producer, paymentCache)
	webhookService := service.NewWebhookService(orderRepo, producer, paymentCache)
	paymentHandler := handler.NewPaymentHandler(paymentService, webhookService)
	srv := app.NewServer(paymentHandler)

	return &Application{
		srv:      srv,
		producer: producer,
		cache:    paymentCache,
	}, nil
}

func (app *Application) Run(ctx context.Context) error {
	// Запуск уборщика кеша
	go func() {
		if err := app.cache.GC(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("GC кеша остановился с ошибкой: %v", err)
		}
	}()

	go func() {
		log.Println("Запуск HTTP сервера на :8080")
		if err := app.srv.Run(":8080"); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP сервер в штатном режиме остановлен")
			} else {
				log.Fatalf("Критическая ошибка сервера: %v", err)
			}
		}
	}()

	// 10. Ожидание сигнала завершения
	<-ctx.Done()
	log.Println("Получен сигнал завершения (Graceful Shutdown)...")

	// 11. Остановка HTTP сервера
	// Даем 5 секунд на завершение текущих запросов
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.Shutdown(shutdownCtx)

	return nil
}

func (app *Application) Shutdown(ctx context.Context) {
	if err := app.srv.Stop(ctx); err != nil {
		log.Printf("Ошибка остановки HTTP сервера: %v", err)
	}
	if err := app.producer.Close(); err != nil {
		log.Printf("Ошибка остановки Kafka Producer: %v", err)
	}
	app.cache.Stop()
}
