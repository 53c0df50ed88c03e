package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定
type Config struct {
	Database   DatabaseConfig
	OpenRouter OpenRouterConfig
	Server     ServerConfig
}

// DatabaseConfig はPostgreSQL接続設定
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// OpenRouterConfig はOpenRouter API設定
// APIKeyの検証はクライアント構築時に行う（設定読み込み時点では空を許容する）
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	SiteURL string
	AppName string
}

// ServerConfig はHTTPサーバ設定
type ServerConfig struct {
	Port int
}

// Load は環境変数ファイルを読み込み、Configを構築します。
// envFileが存在しない場合は環境変数のみから読み込みます。
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("環境変数ファイルの読み込みに失敗: %w", err)
		}
	}

	dbPort, err := intEnv("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     stringEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   stringEnv("DB_NAME", "wakaru"),
			SSLMode:  stringEnv("DB_SSLMODE", "disable"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			Model:   stringEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			SiteURL: os.Getenv("OPENROUTER_SITE_URL"),
			AppName: os.Getenv("OPENROUTER_APP_NAME"),
		},
		Server: ServerConfig{
			Port: serverPort,
		},
	}

	if cfg.Database.User == "" {
		return nil, errors.New("DB_USER が設定されていません")
	}

	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return n, nil
}
