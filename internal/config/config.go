package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseURL string `envconfig:"database_url" required:"true"`
	HTTPAddr    string `envconfig:"http_addr" default:":8080"`
	JwtSecret   string `envconfig:"jwt_secret" required:"true"`

	RabbitUser string `envconfig:"rabbit_user" default:"guest"`
	RabbitPass string `envconfig:"rabbit_pass" default:"guest"`
	RabbitHost string `envconfig:"rabbit_host" default:"localhost"`
	RabbitPort string `envconfig:"rabbit_port" default:"5672"`

	MailHost string `envconfig:"mail_host" default:""`
	MailPort int    `envconfig:"mail_port" default:"587"`
	MailUser string `envconfig:"mail_user" default:""`
	MailPass string `envconfig:"mail_pass" default:""`
	MailFrom string `envconfig:"mail_from" default:"no-reply@leadflow.app"`

	CorsOrigins []string `envconfig:"cors_origins" default:"*"`
}

func NewLoadedConfig() (*Config, error) {
	godotenv.Load()

	var c Config
	if err := envconfig.Process("leadflow", &c); err != nil {
		return nil, errors.WithStack(err)
	}

	return &c, nil
}
