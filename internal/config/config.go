package config

import "os"

// Config collects the environment the server wires at startup. Database
// settings are read by the mysql package itself.
type Config struct {
	Port             string
	Production       bool
	CieloMerchantID  string
	CieloMerchantKey string
	RedisHost        string
	RabbitURL        string
}

func FromEnv() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return Config{
		Port:             port,
		Production:       os.Getenv("APP_ENV") == "production",
		CieloMerchantID:  os.Getenv("CIELO_MERCHANT_ID"),
		CieloMerchantKey: os.Getenv("CIELO_MERCHANT_KEY"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RabbitURL:        os.Getenv("RABBITMQ_URL"),
	}
}
