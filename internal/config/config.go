// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Значения по умолчанию
const (
	DefaultDataFile       = "~/.tracktime-data.yaml"
	DefaultChaptersPrefix = "chapters/"
	DefaultTracksPrefix   = "tracks/"
	DefaultLogLevel       = "info"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	DataFile       string `yaml:"data_file"`
	AwsBucketName  string `yaml:"aws_bucket_name"`
	AwsAccessKey   string `yaml:"aws_access_key"`
	AwsSecretKey   string `yaml:"aws_secret_key"`
	AwsRegion      string `yaml:"aws_region"`
	AwsEndpoint    string `yaml:"aws_endpoint"`
	ChaptersPrefix string `yaml:"chapters_prefix"`
	TracksPrefix   string `yaml:"tracks_prefix"`
	LogLevel       string `yaml:"log_level"`
}

// envOverrides связывает переменные окружения с полями конфигурации
var envOverrides = []struct {
	name  string
	field func(*Config) *string
}{
	{"AWS_BUCKET_NAME", func(c *Config) *string { return &c.AwsBucketName }},
	{"AWS_ACCESS_KEY", func(c *Config) *string { return &c.AwsAccessKey }},
	{"AWS_SECRET_KEY", func(c *Config) *string { return &c.AwsSecretKey }},
	{"AWS_REGION", func(c *Config) *string { return &c.AwsRegion }},
	{"AWS_ENDPOINT", func(c *Config) *string { return &c.AwsEndpoint }},
	{"TRACKTIME_DATA_FILE", func(c *Config) *string { return &c.DataFile }},
	{"TRACKTIME_LOG_LEVEL", func(c *Config) *string { return &c.LogLevel }},
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Отсутствующий файл не считается ошибкой: используются значения по умолчанию.
// Переменные окружения (в том числе из файла .env) имеют приоритет над файлом.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := expandHome(filePath, home)

	config := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Работаем без файла конфигурации
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
		}
	}

	// .env необязателен, ошибку отсутствия файла игнорируем
	_ = godotenv.Load()
	applyEnv(config)

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.DataFile == "" {
		config.DataFile = DefaultDataFile
	}
	if config.ChaptersPrefix == "" {
		config.ChaptersPrefix = DefaultChaptersPrefix
	}
	if config.TracksPrefix == "" {
		config.TracksPrefix = DefaultTracksPrefix
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}

	config.DataFile = expandHome(config.DataFile, home)

	return config, nil
}

// HasStorage сообщает, заданы ли настройки S3
func (c *Config) HasStorage() bool {
	return c.AwsBucketName != "" && c.AwsRegion != ""
}

func applyEnv(config *Config) {
	for _, o := range envOverrides {
		if value, ok := os.LookupEnv(o.name); ok && value != "" {
			*o.field(config) = value
		}
	}
}

// expandHome раскрывает тильду в начале пути
func expandHome(path, home string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return home + path[1:]
	}
	return path
}
