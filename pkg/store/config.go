package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config описывает подключение к файлу хранилища
type Config struct {
	// Path - путь к файлу БД (":memory:" для in-memory хранилища)
	Path string `yaml:"path"`

	// BusyTimeoutMS - сколько ждать снятия блокировки перед SQLITE_BUSY (мс)
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`

	// JournalMode - режим журнала (WAL, DELETE, ...)
	JournalMode string `yaml:"journal_mode"`

	// Synchronous - режим fsync (NORMAL, FULL, OFF)
	Synchronous string `yaml:"synchronous"`

	// CacheSizeKB - размер кеша страниц в килобайтах
	CacheSizeKB int `yaml:"cache_size_kb"`

	// Audit - настройки журнала операций
	Audit AuditConfig `yaml:"audit"`
}

// AuditConfig - настройки журнала операций
type AuditConfig struct {
	// Enabled - включить журналирование
	Enabled bool `yaml:"enabled"`

	// File - путь к JSONL файлу журнала (пустое = не писать в файл)
	File string `yaml:"file"`

	// Stderr - дублировать записи в stderr
	Stderr bool `yaml:"stderr"`
}

// DefaultConfig возвращает конфигурацию с настройками по умолчанию
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		BusyTimeoutMS: 5000,
		JournalMode:   "WAL",
		Synchronous:   "NORMAL",
		CacheSizeKB:   64000,
	}
}

// LoadConfig читает конфигурацию из YAML файла
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig("")
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля конфигурации
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("store path is required")
	}
	if c.BusyTimeoutMS < 0 {
		return fmt.Errorf("busy_timeout_ms must be >= 0")
	}
	return nil
}
