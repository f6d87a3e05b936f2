// Package config はアプリケーション設定を読み込みます。
// 環境変数を優先し、任意でyamlファイルからも読み込めます。
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config はアプリケーション全体の設定です
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Fetch     FetchConfig
	Translate TranslateConfig
	Log       LogConfig
}

// AppConfig はサーバー自体の設定です
type AppConfig struct {
	Env  string // development, production
	Port string
}

// DatabaseConfig はデータベース接続の設定です
type DatabaseConfig struct {
	Driver string // sqlite, postgres
	DSN    string
}

// FetchConfig はオークションページ取得の設定です
type FetchConfig struct {
	Timeout time.Duration
}

// TranslateConfig は翻訳アダプターの設定です
// APIKeyが空の場合、翻訳は行われません
type TranslateConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	SourceLang string // デフォルト "ja"
	TargetLang string // デフォルト "zh-CN"
}

// LogConfig はログの設定です
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load は設定を読み込みます。環境変数が設定ファイルより優先されます
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "9000")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "artstore.db")
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("translate.model", "gpt-4o-mini")
	v.SetDefault("translate.timeout", "30s")
	v.SetDefault("translate.source_lang", "ja")
	v.SetDefault("translate.target_lang", "zh-CN")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix("ARTSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 翻訳キーだけは歴史的に素の環境変数名で渡されるため、別名で束縛します
	_ = v.BindEnv("translate.api_key", "ARTSTORE_TRANSLATE_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("translate.model", "ARTSTORE_TRANSLATE_MODEL", "OPENAI_TRANSLATE_MODEL")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		Fetch: FetchConfig{
			Timeout: v.GetDuration("fetch.timeout"),
		},
		Translate: TranslateConfig{
			APIKey:     v.GetString("translate.api_key"),
			Model:      v.GetString("translate.model"),
			BaseURL:    v.GetString("translate.base_url"),
			Timeout:    v.GetDuration("translate.timeout"),
			SourceLang: v.GetString("translate.source_lang"),
			TargetLang: v.GetString("translate.target_lang"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	return cfg, nil
}
