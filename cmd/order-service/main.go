package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/maru-commerce/maru-order-service/internal/config"
	"github.com/maru-commerce/maru-order-service/internal/delivery/httpapi"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/chat"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/kafka"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/metrics"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/migrate"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/paygate"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/postgres"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/postgres/repository"
	"github.com/maru-commerce/maru-order-service/internal/infrastructure/push"
	notificationusecase "github.com/maru-commerce/maru-order-service/internal/usecase/notification"
	orderusecase "github.com/maru-commerce/maru-order-service/internal/usecase/order"
	paymentusecase "github.com/maru-commerce/maru-order-service/internal/usecase/payment"
	templateusecase "github.com/maru-commerce/maru-order-service/internal/usecase/template"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		if err := migrate.RunMigrations(db, path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewDefaultKafkaPublisher(brokers)
	sub := kafka.NewDefaultKafkaSubscriber(brokers)

	// Init repositories
	orderRepo := repository.NewDefaultOrderRepository(db)
	notificationRepo := repository.NewDefaultNotificationRepository(db)
	templateRepo := repository.NewDefaultTemplateRepository(db)
	storeRepo := repository.NewDefaultStoreRepository(db)

	// Init metrics
	serviceMetrics := metrics.NewServiceMetrics()

	// Outbound clients
	gatewayClient := paygate.NewHTTPGatewayClient(
		cfg.PaymentGateway.URL,
		cfg.Secrets.PaymentMerchantID,
		cfg.Secrets.PaymentClientKey,
	)
	pushClient := push.NewHTTPPushClient(cfg.PushGateway.URL, cfg.Secrets.PushGatewayKey)
	chatSender := chat.NewWebhookSender()

	// Init usecases
	orderUc := orderusecase.NewDefaultOrderUsecase(
		orderRepo,
		pub,
		cfg.Notifications.HistoryTopic,
		cfg.Secrets.OnlinePaymentEnabled,
		serviceMetrics,
	)
	paymentUc := paymentusecase.NewDefaultPaymentUsecase(
		orderRepo,
		gatewayClient,
		cfg.Secrets.PaymentMerchantID,
		cfg.Secrets.PaymentSigningSecret,
		serviceMetrics,
	)
	templateUc := templateusecase.NewDefaultTemplateUsecase(templateRepo)
	notificationUc := notificationusecase.NewDefaultNotificationUsecase(
		notificationRepo,
		orderRepo,
		storeRepo,
		templateUc,
		pushClient,
		chatSender,
		cfg.Secrets.ChatWebhookURL,
		serviceMetrics,
	)

	// HTTP API
	auth := httpapi.NewAuthMiddleware(cfg.Secrets.AuthSecret)
	server := httpapi.NewServer(
		auth,
		httpapi.NewOrderHandler(orderUc),
		httpapi.NewPaymentHandler(paymentUc),
		httpapi.NewNotificationHandler(notificationUc),
		httpapi.NewTemplateHandler(templateUc),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Dispatch worker
	go notificationUc.StartDispatchWorker(ctx, sub, cfg.Notifications.HistoryTopic, cfg.Notifications.DispatchGroupID)

	// Deferred notification processor
	go notificationUc.StartDeferredProcessor(ctx)

	// Daily push token cleanup
	go notificationUc.StartTokenJanitor(ctx, cfg.Notifications.JanitorHour)

	// Prometheus endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+cfg.MetricsServer.Port, mux); err != nil {
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("order service started on %s\n", addr)
	if err := server.Listen(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
