package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`
	Environment    string `mapstructure:"ENV"`
	Timezone       string `mapstructure:"TIMEZONE"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		Environment:    os.Getenv("ENV"),
		Timezone:       os.Getenv("TIMEZONE"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	// GEMINI_API_KEY опционален: без него общие вопросы не отвечаются
	log.Printf("Config loaded\n")

	return cfg, nil
}
