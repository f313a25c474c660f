package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type OrderConfig struct {
	Env            string `yaml:"env"`
	HTTPServer     `yaml:"http_server"`
	MetricsServer  `yaml:"metrics_server"`
	OrderDB        `yaml:"order_db"`
	KafkaService   `yaml:"kafka_service"`
	PushGateway    `yaml:"push_gateway"`
	PaymentGateway `yaml:"payment_gateway"`
	Notifications  `yaml:"notifications"`
	Secrets        Secrets
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MetricsServer struct {
	Port string `yaml:"port" env-default:"9100"`
}

type OrderDB struct {
	Dsn string `yaml:"dsn" env:"ORDER_DB_DSN"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PushGateway struct {
	URL string `yaml:"url"`
}

type PaymentGateway struct {
	URL string `yaml:"url"`
}

type Notifications struct {
	HistoryTopic    string `yaml:"history_topic" env-default:"order-history-events"`
	DispatchGroupID string `yaml:"dispatch_group_id" env-default:"notification-dispatcher"`
	JanitorHour     int    `yaml:"janitor_hour" env-default:"4"`
}

// Secrets are injected from the environment only, never from the YAML file.
type Secrets struct {
	PaymentMerchantID    string `env:"PAYMENT_MERCHANT_ID"`
	PaymentClientKey     string `env:"PAYMENT_CLIENT_KEY"`
	PaymentSigningSecret string `env:"PAYMENT_SIGNING_SECRET"`
	PushGatewayKey       string `env:"PUSH_GATEWAY_KEY"`
	ChatWebhookURL       string `env:"CHAT_WEBHOOK_URL"`
	AuthSecret           string `env:"AUTH_SECRET"`
	OnlinePaymentEnabled bool   `env:"ONLINE_PAYMENT_ENABLED" env-default:"false"`
}

func MustLoad() *OrderConfig {
	configPath := os.Getenv("ORDER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ORDER_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg OrderConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read env config: %v", err)
	}

	return &cfg
}
