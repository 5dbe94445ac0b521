package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/metric"
	"github.com/suaimp/github-mktplace-v1-sub008/internal/models"
)

// Кеш платежных состояний: последние прочитанные состояния заказов
// держим в памяти, чтобы опрос статуса с фронта не ходил в БД на каждый тик.
type cacheItem struct {
	data      *models.OrderPayment
	expiresAt int64
}

type PaymentCache struct {
	items             map[string]cacheItem
	defaultExpiration time.Duration //Это стандартное время жизни.
	cleanupInterval   time.Duration //Это частота работы нашего "уборщика", который чистит кеш
	sync.RWMutex
	ticker *time.Ticker
}

func NewPaymentCache(defaultExpiration, cleanupInterval time.Duration) *PaymentCache {
	c := &PaymentCache{
		items:             make(map[string]cacheItem),
		defaultExpiration: defaultExpiration,
		cleanupInterval:   cleanupInterval,
		ticker:            time.NewTicker(cleanupInterval),
	}
	return c
}

func (ch *PaymentCache) Set(orderID string, order *models.OrderPayment) {
	ch.Lock()
	defer ch.Unlock()
	_, exists := ch.items[orderID]
	//При сохранении указываем время жизни, когда нужно удалить объект
	expiration := time.Now().Add(ch.defaultExpiration).UnixNano()
	ch.items[orderID] = cacheItem{
		data:      order,
		expiresAt: expiration,
	}
	if !exists {
		metric.CacheSize.Inc()
	}
}

func (ch *PaymentCache) Get(orderID string) (*models.OrderPayment, bool) {
	ch.RLock()
	defer ch.RUnlock()

	res, ok := ch.items[orderID]
	if !ok {
		return nil, false
	}

	// Если ключ есть, проверяем, не протух ли он
	if time.Now().UnixNano() > res.expiresAt {
		return nil, false
	}

	return res.data, true
}

// Delete выбрасывает заказ из кеша. Вызывается при каждой смене статуса,
// чтобы опрос с фронта не увидел устаревший статус после вебхука.
func (ch *PaymentCache) Delete(orderID string) {
	ch.Lock()
	defer ch.Unlock()

	if _, ok := ch.items[orderID]; ok {
		delete(ch.items, orderID)
		metric.CacheSize.Dec()
	}
}

func (ch *PaymentCache) GC(ctx context.Context) error {
	for {
		select {
		case <-ch.ticker.C:
			ch.Lock()
			now := time.Now().UnixNano() //текущее время в UnixNano
			deletedCounter := 0
			for key, item := range ch.items {
				if now > item.expiresAt { //проверка, что настало время очистки
					metric.CacheSize.Dec()
					delete(ch.items, key) //удаление данных из кеша
					deletedCounter++
				}
			}
			if deletedCounter > 0 {
				log.Printf("GC: удалено %d просроченных записей", deletedCounter)
			}
			ch.Unlock()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (ch *PaymentCache) Stop() {
	defer ch.ticker.Stop()
}
