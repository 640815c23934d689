package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type GatewayConfig struct {
	RazorpayKeyID     string
	RazorpayKeySecret string
	MockSuccessRate   float64
	MockDelay         time.Duration
	InitiateTimeout   time.Duration
	VerifyTimeout     time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("MOCK_SUCCESS_RATE", 0.95)
	viper.SetDefault("MOCK_DELAY_MS", 1000)
	viper.SetDefault("GATEWAY_INITIATE_TIMEOUT_SEC", 5)
	viper.SetDefault("GATEWAY_VERIFY_TIMEOUT_SEC", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Gateway: GatewayConfig{
			RazorpayKeyID:     viper.GetString("RAZORPAY_KEY_ID"),
			RazorpayKeySecret: viper.GetString("RAZORPAY_KEY_SECRET"),
			MockSuccessRate:   viper.GetFloat64("MOCK_SUCCESS_RATE"),
			MockDelay:         time.Duration(viper.GetInt("MOCK_DELAY_MS")) * time.Millisecond,
			InitiateTimeout:   time.Duration(viper.GetInt("GATEWAY_INITIATE_TIMEOUT_SEC")) * time.Second,
			VerifyTimeout:     time.Duration(viper.GetInt("GATEWAY_VERIFY_TIMEOUT_SEC")) * time.Second,
		},
	}

	return config, nil
}
