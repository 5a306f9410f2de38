package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config содержит конфигурацию сервера.
// Значения читаются из переменных окружения, опционально поверх YAML-файла.
type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Storage    Storage    `yaml:"storage"`
	Auth       Auth       `yaml:"auth"`
	Bootstrap  Bootstrap  `yaml:"bootstrap"`
}

// HTTPServer содержит настройки HTTP-сервера
type HTTPServer struct {
	Address      string        `yaml:"address" env:"SERVER_ADDRESS" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// Storage содержит настройки персистентного хранилища
type Storage struct {
	// Путь к файлу SQLite. ":memory:" — БД в памяти (для тестов).
	DBPath string `yaml:"db_path" env:"DB_PATH" env-default:"leeroy.db"`
}

// Auth содержит настройки выпуска и подписи токенов
type Auth struct {
	// Секрет для HMAC-SHA256 подписи JWT. Один на весь процесс.
	JWTSignatureSecret string `yaml:"jwt_signature_secret" env:"JWT_SIGNATURE_SECRET" env-default:"DefaultJSONWebTokenSignatureSecret"`
	// Время жизни access-токенов в минутах
	AccessTokenTTLMinutes int `yaml:"access_token_ttl_in_minutes" env:"ACCESS_TOKEN_TTL_IN_MINUTES" env-default:"60"`
	// Время жизни refresh-токенов в минутах (30 суток по умолчанию)
	RefreshTokenTTLMinutes int `yaml:"refresh_token_ttl_in_minutes" env:"REFRESH_TOKEN_TTL_IN_MINUTES" env-default:"43200"`
}

// Bootstrap содержит данные администратора, создаваемого при первом запуске
type Bootstrap struct {
	AdminEmail     string `yaml:"admin_email" env:"DEFAULT_ADMIN_EMAIL" env-default:"admin@leeroy.local"`
	AdminPassword  string `yaml:"admin_password" env:"DEFAULT_ADMIN_PASSWORD" env-default:"ChangeMe451!"`
	AdminFirstname string `yaml:"admin_firstname" env:"DEFAULT_ADMIN_FIRSTNAME" env-default:"Leeroy"`
	AdminSurname   string `yaml:"admin_surname" env:"DEFAULT_ADMIN_SURNAME" env-default:"Jenkins"`
}

// AccessTokenTTL возвращает время жизни access-токена как Duration
func (a Auth) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTokenTTL возвращает время жизни refresh-токена как Duration
func (a Auth) RefreshTokenTTL() time.Duration {
	return time.Duration(a.RefreshTokenTTLMinutes) * time.Minute
}

// MustLoad загружает конфигурацию и паникует при ошибке.
// configPath может быть пустым — тогда читаются только переменные окружения.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Load загружает конфигурацию из файла (если задан) и переменных окружения
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return &cfg, nil
}
