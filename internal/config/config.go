package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "PEDEDRINK_CONFIG_FILE"

// Store drivers accepted by STORE_DRIVER.
const (
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	ServiceName string `mapstructure:"service_name"`
	HTTPPort    string `mapstructure:"http_port"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"`

	JWTSecret  string        `mapstructure:"jwt_secret"`
	JWTTTL     time.Duration `mapstructure:"jwt_ttl"`
	CORSOrigin string        `mapstructure:"cors_origin"`

	AdminUsername string `mapstructure:"admin_username"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`

	RateLimitMax    int           `mapstructure:"rate_limit_max"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`

	StoreDriver string `mapstructure:"store_driver"`
	BoltPath    string `mapstructure:"bolt_path"`
	DBHost      string `mapstructure:"db_host"`
	DBPort      string `mapstructure:"db_port"`
	DBUser      string `mapstructure:"db_user"`
	DBPassword  string `mapstructure:"db_password"`
	DBName      string `mapstructure:"db_name"`
	DBSSLMode   string `mapstructure:"db_sslmode"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPass   string `mapstructure:"redis_password"`
	RedisDB     int    `mapstructure:"redis_db"`
	SnapshotKey string `mapstructure:"snapshot_key"`

	LowStockThreshold int    `mapstructure:"low_stock_threshold"`
	MaxPrice          string `mapstructure:"max_price"`
	SeedDemoData      bool   `mapstructure:"seed_demo_data"`

	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`

	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`

	LowStockSchedule string `mapstructure:"low_stock_schedule"`
}

var defaults = map[string]any{
	"service_name":        "pededrink",
	"http_port":           "8080",
	"environment":         "development",
	"log_level":           "info",
	"log_file":            "",
	"jwt_secret":          "pededrink-dev-secret",
	"jwt_ttl":             "24h",
	"cors_origin":         "http://localhost:3000",
	"admin_username":      "admin",
	"admin_email":         "admin@pededrink.com",
	"admin_password":      "password",
	"rate_limit_max":      100,
	"rate_limit_window":   "15m",
	"store_driver":        DriverBolt,
	"bolt_path":           "pededrink.db",
	"db_host":             "localhost",
	"db_port":             "5432",
	"db_user":             "postgres",
	"db_password":         "postgres",
	"db_name":             "pededrink",
	"db_sslmode":          "disable",
	"redis_addr":          "",
	"redis_password":      "",
	"redis_db":            0,
	"snapshot_key":        "pededrink:snapshot",
	"low_stock_threshold": 10,
	"max_price":           "999999.99",
	"seed_demo_data":      false,
	"kafka_brokers":       []string{},
	"kafka_topic":         "pededrink-events",
	"jaeger_endpoint":     "http://localhost:14268/api/traces",
	"tracing_enabled":     false,
	"low_stock_schedule":  "@every 15m",
}

// Load reads defaults, an optional YAML file and the environment, in
// increasing order of precedence. args are the command line arguments
// without the program name.
func Load(args []string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := configFilepath(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configFilepath(args []string) string {
	cmdLine := pflag.NewFlagSet("pededrink", pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(args)
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverBolt, DriverPostgres, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.StoreDriver == DriverRedis && c.RedisAddr == "" {
		return fmt.Errorf("redis store driver requires REDIS_ADDR")
	}
	if c.LowStockThreshold <= 0 {
		return fmt.Errorf("low stock threshold must be positive, got %d", c.LowStockThreshold)
	}
	if _, err := c.MaxPriceDecimal(); err != nil {
		return err
	}
	return nil
}

// MaxPriceDecimal parses the configured price ceiling.
func (c Config) MaxPriceDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.MaxPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid max price %q: %w", c.MaxPrice, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("max price must be positive, got %s", c.MaxPrice)
	}
	return d, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
