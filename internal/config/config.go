package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type HTTPCfg struct {
	Port           int      `env:"HTTP_PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

type PipelineCfg struct {
	// AutoConvertScoreThreshold is the starting value; it can be changed at
	// runtime through the policy endpoint or the console.
	AutoConvertScoreThreshold int  `env:"AUTO_CONVERT_SCORE_THRESHOLD" envDefault:"70"`
	SeedDemoData              bool `env:"SEED_DEMO_DATA" envDefault:"false"`
}

// RabbitCfg is optional: with no URL the service runs without messaging.
type RabbitCfg struct {
	URL string `env:"RABBITMQ_URL"`
}

// MailCfg is optional: without a host and user, welcome emails are skipped.
type MailCfg struct {
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT" envDefault:"587"`
	User     string `env:"MAIL_USER"`
	Password string `env:"MAIL_PASSWORD"`
	From     string `env:"MAIL_FROM" envDefault:"no-reply@pipecrm.example"`
}

type Config struct {
	HTTPCfg     HTTPCfg
	PipelineCfg PipelineCfg
	RabbitCfg   RabbitCfg
	MailCfg     MailCfg
}

func Build() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}
	return cfg, nil
}

func (c Config) MailConfigured() bool {
	return c.MailCfg.Host != "" && c.MailCfg.User != ""
}
