package config

import "os"

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr        string
	KafkaBroker      string
	ElasticsearchURL string

	StripeSecretKey     string
	StripeWebhookSecret string

	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "3000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "storefrontdb"),

		RedisAddr:        os.Getenv("REDIS_ADDR"),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
	}
}

func (c Config) DSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPass +
		" dbname=" + c.DBName + " port=" + c.DBPort +
		" sslmode=disable TimeZone=UTC"
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
