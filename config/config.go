package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisOTPDB    int    `mapstructure:"REDIS_OTP_DB"`

	// SMS gateway configuration. An empty SMS_API_TOKEN puts outbound
	// messaging in degraded mode: codes are stored but never dispatched.
	SMSAPIURL   string `mapstructure:"SMS_API_URL"`
	SMSAPIToken string `mapstructure:"SMS_API_TOKEN"`
	SMSSenderID string `mapstructure:"SMS_SENDER_ID"`

	// OTPDebug echoes generated codes in API responses. Never honored in production.
	OTPDebug bool `mapstructure:"OTP_DEBUG"`

	// Salon business hours and slot granularity, minutes from midnight.
	BusinessOpen  int `mapstructure:"BUSINESS_OPEN"`
	BusinessClose int `mapstructure:"BUSINESS_CLOSE"`
	SlotInterval  int `mapstructure:"SLOT_INTERVAL_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_OTP_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SMS_API_URL", "https://app.text.lk/api/v3")
	viper.SetDefault("SMS_API_TOKEN", "")
	viper.SetDefault("SMS_SENDER_ID", "GlowTheory")
	viper.SetDefault("OTP_DEBUG", false)
	viper.SetDefault("BUSINESS_OPEN", 9*60)
	viper.SetDefault("BUSINESS_CLOSE", 18*60)
	viper.SetDefault("SLOT_INTERVAL_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
