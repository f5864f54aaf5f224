package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	defaultBcryptCost = 10
	defaultLogLevel   = "info"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpPort               int           `yaml:"http_port" validate:"required,gt=0,lt=65536"`
	CorsAllowedOrigins     []string      `yaml:"cors_allowed_origins"`
	JwtTTL                 time.Duration `yaml:"jwt_ttl" validate:"gte=0"` // 0 means tokens never expire
	BcryptCost             int           `yaml:"bcrypt_cost" validate:"omitempty,min=4,max=31"`
	MediaPath              string        `yaml:"media_path" validate:"required"`
	MaxImageSize           int64         `yaml:"max_image_size" validate:"required,gt=0"`
	AllowedImageMimeTypes  []string      `yaml:"allowed_image_mime_types" validate:"required,min=1"`
	LogLevel               string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON                bool          `yaml:"log_json"`
	HTTPS                  bool          `yaml:"https"` // enables HSTS
	// Login attempts allowed per client IP; 0 disables the limit.
	LoginAttemptsPerMinute int `yaml:"login_attempts_per_minute" validate:"gte=0"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

// Admin is the account seeded on startup. Empty email disables seeding.
type Admin struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email" validate:"omitempty,email"`
	Password string `yaml:"password" validate:"required_with=Email"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key" validate:"required"`
	Admin  Admin  `yaml:"admin"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml and private.yaml from configFolder, applies
// environment overrides (JWT_SECRET_KEY, PORT) and validates the result.
func Load(configFolder string) (*Config, error) {
	var cfg Config
	if err := loadPath(path.Join(configFolder, "public.yaml"), &cfg.Public); err != nil {
		return nil, err
	}
	if err := loadPath(path.Join(configFolder, "private.yaml"), &cfg.Private); err != nil {
		return nil, err
	}

	if key := os.Getenv("JWT_SECRET_KEY"); key != "" {
		cfg.Private.JwtKey = key
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Public.HttpPort = p
	}

	if cfg.Public.BcryptCost == 0 {
		cfg.Public.BcryptCost = defaultBcryptCost
	}
	if cfg.Public.LogLevel == "" {
		cfg.Public.LogLevel = defaultLogLevel
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics. The server must not start without a signing key.
func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
