package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	IdentityBaseURL    string `env:"IDENTITY_BASE_URL,required"`
	IdentityAnonKey    string `env:"IDENTITY_ANON_KEY,required"`
	IdentityServiceKey string `env:"IDENTITY_SERVICE_KEY"`

	// AdminCodeHash (bcrypt) tiene prioridad sobre AdminCode en texto plano.
	AdminCode     string `env:"ADMIN_CODE"`
	AdminCodeHash string `env:"ADMIN_CODE_HASH"`

	LLMAPIKey  string `env:"LLM_API_KEY,required"`
	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://api.deepseek.com/v1"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"deepseek-chat"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
