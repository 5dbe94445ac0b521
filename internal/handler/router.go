package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(paymentHandler *PaymentHandler) *gin.Engine {
	router := gin.Default()
	// "mktplace-payment-service" — имя, по которому ищем трейсы в Jaeger
	router.Use(otelgin.Middleware("mktplace-payment-service"))

	router.Use(MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	checkout := router.Group("/checkout")
	{
		checkout.POST("/pay", paymentHandler.CheckoutHandler)
	}

	// Вебхук шлюза: путь зашит в настройках аккаунта на стороне шлюза
	router.POST("/webhooks/payment-gateway", paymentHandler.WebhookHandler)

	router.GET("/payment/status/:order_id", paymentHandler.StatusHandler)

	return router
}
