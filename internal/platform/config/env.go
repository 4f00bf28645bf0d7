// Package config は環境変数からの設定読み込みを提供します。
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv は環境変数から target に設定を読み込みます。
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Server はAPIサーバーの設定です。DBとRedisの設定はそれぞれのパッケージが読み込みます。
type Server struct {
	Addr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	GinMode      string        `env:"GIN_MODE" envDefault:"release"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`

	PasswordHashCost int           `env:"PASSWORD_HASH_COST" envDefault:"10"`
	TokenCacheTTL    time.Duration `env:"TOKEN_CACHE_TTL" envDefault:"24h"`
}

// LoadServer は環境変数からServer設定を読み込みます。
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}
