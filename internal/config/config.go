package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type EscrowConfig struct {
	Env             string `yaml:"env"`
	HTTPServer      `yaml:"http_server"`
	EscrowDB        `yaml:"escrow_db"`
	LogConfig       `yaml:"log_config"`
	KafkaService    `yaml:"kafka-service"`
	PaymentProvider `yaml:"payment-provider"`
	Collaborators   `yaml:"collaborators"`
	Auth            `yaml:"auth"`
	Fees            `yaml:"fees"`
	Windows         `yaml:"windows"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type EscrowDB struct {
	Dsn string `yaml:"dsn"`
	// MigrationsPath points at versioned SQL migrations; empty skips them
	// and AutoMigrate alone shapes the schema.
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PaymentProvider struct {
	BaseURL       string `yaml:"base_url"`
	APIKey        string `yaml:"api_key" env:"PROVIDER_API_KEY"`
	WebhookSecret string `yaml:"webhook_secret" env:"PROVIDER_WEBHOOK_SECRET"`
}

type Collaborators struct {
	NotifierURL  string `yaml:"notifier_url"`
	InventoryURL string `yaml:"inventory_url"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

// Fee percentages are basis points so all math stays in integer minor units.
type Fees struct {
	SellerFeeBps        int64 `yaml:"seller_fee_bps" env-default:"1000"`
	InstantPayoutFeeBps int64 `yaml:"instant_payout_fee_bps" env-default:"150"`
	InstantPayoutFeeCap int64 `yaml:"instant_payout_fee_cap" env-default:"1500"`
}

type Windows struct {
	ReturnDeadline     time.Duration `yaml:"return_deadline" env-default:"72h"`
	DisputeResponseTTL time.Duration `yaml:"dispute_response_ttl" env-default:"72h"`
	SweepInterval      time.Duration `yaml:"sweep_interval" env-default:"1m"`
}

func MustLoad() *EscrowConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ESCROW_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
