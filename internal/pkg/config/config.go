package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that must differ between environments
// - default: Values common across all environments (timezone, timeout, etc.)
// - optional credentials: an empty value disables the feature instead of failing startup
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Pricing   PricingConfig
	Stripe    StripeConfig
	PayPal    PayPalConfig
	Mail      MailConfig
	Broker    BrokerConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	// absolute origin used to build payment return URLs
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"https://localhost:3000"`
	// proxies allowed to set X-Forwarded-For; empty means the peer address is the client
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

type StorageConfig struct {
	BookingsFile    string `envconfig:"BOOKINGS_FILE" default:"data/bookings.json"`
	TicketDir       string `envconfig:"TICKET_DIR" default:"public/qrcodes"`
	TicketURLPrefix string `envconfig:"TICKET_URL_PREFIX" default:"/qrcodes"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Stripe-Signature"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After,X-RateLimit-Limit,X-RateLimit-Remaining,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig signs operator tokens. With an empty secret no token validates.
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET"`
	Duration string `envconfig:"JWT_DURATION" default:"12h"`
}

const (
	PricingTierStandard = "standard"
	PricingTierTest     = "test"
)

type PricingConfig struct {
	Tier                string `envconfig:"PRICING_TIER" default:"standard"`
	Currency            string `envconfig:"PRICING_CURRENCY" default:"eur"`
	UnitPriceCents      int64  `envconfig:"PRICING_UNIT_PRICE_CENTS" default:"5000"`
	ServiceFeeCents     int64  `envconfig:"PRICING_SERVICE_FEE_CENTS" default:"500"`
	TestUnitPriceCents  int64  `envconfig:"PRICING_TEST_UNIT_PRICE_CENTS" default:"100"`
	TestServiceFeeCents int64  `envconfig:"PRICING_TEST_SERVICE_FEE_CENTS" default:"0"`
}

// Active returns the unit price and service fee of the configured tier.
func (c PricingConfig) Active() (unitCents, feeCents int64) {
	if strings.EqualFold(c.Tier, PricingTierTest) {
		return c.TestUnitPriceCents, c.TestServiceFeeCents
	}
	return c.UnitPriceCents, c.ServiceFeeCents
}

type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`
}

type PayPalConfig struct {
	ClientID     string        `envconfig:"PAYPAL_CLIENT_ID"`
	ClientSecret string        `envconfig:"PAYPAL_CLIENT_SECRET"`
	BaseURL      string        `envconfig:"PAYPAL_API_BASE" default:"https://api-m.paypal.com"`
	Timeout      time.Duration `envconfig:"PAYPAL_TIMEOUT" default:"15s"`
}

type MailConfig struct {
	Host      string        `envconfig:"EMAIL_HOST" default:"smtp.gmail.com"`
	Port      int           `envconfig:"EMAIL_PORT" default:"587"`
	User      string        `envconfig:"EMAIL_USER"`
	Password  string        `envconfig:"EMAIL_PASS"`
	From      string        `envconfig:"EMAIL_FROM"`
	Timeout   time.Duration `envconfig:"EMAIL_TIMEOUT" default:"20s"`
	QueueSize int           `envconfig:"NOTIFY_QUEUE_SIZE" default:"64"`
}

func (c MailConfig) Enabled() bool {
	return c.User != "" && c.Password != ""
}

type BrokerConfig struct {
	URL   string `envconfig:"RABBITMQ_URL"`
	Queue string `envconfig:"RABBITMQ_QUEUE" default:"booking.events"`
}

const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

type RateLimitConfig struct {
	Enabled     bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Backend     string        `envconfig:"RATE_LIMIT_BACKEND" default:"memory"`
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"5m"`
	MaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"30"`
	Prefix      string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl:payment"`
}

type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password    string        `envconfig:"REDIS_PASSWORD"`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"2s"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch strings.ToLower(c.Pricing.Tier) {
	case PricingTierStandard, PricingTierTest:
	default:
		return fmt.Errorf("unknown PRICING_TIER %q", c.Pricing.Tier)
	}
	switch strings.ToLower(c.RateLimit.Backend) {
	case RateLimitBackendMemory, RateLimitBackendRedis:
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q", c.RateLimit.Backend)
	}
	if c.RateLimit.MaxRequests < 1 || c.RateLimit.Window <= 0 {
		return errors.New("rate limit window and max requests must be positive")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:          "8889", // Test port
			PublicBaseURL: "https://travel.test",
		},
		Storage: StorageConfig{
			BookingsFile:    "testdata/bookings.json",
			TicketDir:       "testdata/qrcodes",
			TicketURLPrefix: "/qrcodes",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Pricing: PricingConfig{
			Tier:            PricingTierStandard,
			Currency:        "eur",
			UnitPriceCents:  5000,
			ServiceFeeCents: 500,
		},
		Stripe: StripeConfig{
			SecretKey:     "sk_test_dummy",
			WebhookSecret: "whsec_test",
		},
		PayPal: PayPalConfig{
			BaseURL: "http://127.0.0.1:0",
			Timeout: 5 * time.Second,
		},
		Broker: BrokerConfig{
			Queue: "booking.events",
		},
		RateLimit: RateLimitConfig{
			Enabled:     true,
			Backend:     RateLimitBackendMemory,
			Window:      5 * time.Minute,
			MaxRequests: 30,
			Prefix:      "rl:test",
		},
	}
}
