package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env       string   `envconfig:"APP_ENV" default:"dev"`
	Addr      string   `envconfig:"HTTP_ADDR" default:":8000"`
	DBPath    string   `envconfig:"DB_PATH" default:"fast.db"`
	CORSAllow []string `envconfig:"CORS_ALLOW" default:"*"`
}

// LoadConfig reads configuration from the environment, with a local .env
// file applied first when present (dev convenience, ignored if missing).
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
