package initializers

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`

	ServerPort   string `mapstructure:"PORT"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`

	JwtSecret          string        `mapstructure:"JWT_SECRET"`
	AccessTokenMaxAge  time.Duration `mapstructure:"ACCESS_TOKEN_MAXAGE"`
	RefreshTokenMaxAge time.Duration `mapstructure:"REFRESH_TOKEN_MAXAGE"`

	RedisURL string `mapstructure:"REDIS_URL"`
	AmqpURL  string `mapstructure:"AMQP_URL"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`

	PaymentGatewayURL   string `mapstructure:"PAYMENT_GATEWAY_URL"`
	PaymentGatewayToken string `mapstructure:"PAYMENT_GATEWAY_TOKEN"`
}

var AppConfig Config

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigType("env")
	viper.SetConfigName("app")

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("ACCESS_TOKEN_MAXAGE", "15m")
	viper.SetDefault("REFRESH_TOKEN_MAXAGE", "720h")
	viper.SetDefault("SMTP_PORT", 587)

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		// a missing app.env is fine when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	if err == nil {
		AppConfig = config
	}
	return
}
