package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	GitHub struct {
		Token    string        `mapstructure:"token"`
		BaseURL  string        `mapstructure:"base_url"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"github"`
	Profile struct {
		// ListDelay adds latency to the public profile listing.
		ListDelay time.Duration `mapstructure:"list_delay"`
		// LegacyRemoval makes a removal with an unknown entry id drop the last entry.
		LegacyRemoval bool `mapstructure:"legacy_removal"`
	} `mapstructure:"profile"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

// LoadConfig reads .env and config.yaml from the given directories (default ".")
// and lets environment variables override them.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, len(paths))
	for i, p := range paths {
		envFiles[i] = strings.TrimSuffix(p, "/") + "/.env"
	}
	if err = godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetDefault("app.port", "5000")
	v.SetDefault("app.env", "development")
	v.SetDefault("auth.token_lifespan", 5*24*time.Hour)
	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.cache_ttl", 10*time.Minute)
	v.SetDefault("github.timeout", 10*time.Second)
	v.SetDefault("profile.list_delay", time.Duration(0))
	v.SetDefault("profile.legacy_removal", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.base_url", "GITHUB_BASE_URL")
	v.BindEnv("github.cache_ttl", "GITHUB_CACHE_TTL")
	v.BindEnv("github.timeout", "GITHUB_TIMEOUT")
	v.BindEnv("profile.list_delay", "PROFILE_LIST_DELAY")
	v.BindEnv("profile.legacy_removal", "PROFILE_LEGACY_REMOVAL")
	v.BindEnv("jaeger.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}
