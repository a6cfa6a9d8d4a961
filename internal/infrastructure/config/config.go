package config

import (
	"errors"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Database   Database
	Auth       Auth
	Prometheus Prometheus
}

type HTTPServer struct {
	Address      string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Database struct {
	Driver   string
	Username string
	Password string
	Host     string
	Port     string
	DbName   string
	SSLMode  string
	MaxConns int32
}

type Auth struct {
	JWTSecret  string
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

type Prometheus struct {
	Address string
	Port    int
}

func MustLoad(configDir string) *Config {
	cfg, err := Load(configDir)
	if err != nil {
		log.Printf("Error loading config: %s", err)
		os.Exit(1)
	}
	return cfg
}

// Load reads config.yaml from configDir when present. Values from the
// environment (BLOG_ prefix, a .env file is honoured) take precedence.
func Load(configDir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("blog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Printf("Config file not found in %s, using defaults and environment", configDir)
	}

	config := &Config{
		Env: v.GetString("env"),
		HTTPServer: HTTPServer{
			Address:      v.GetString("http_server.address"),
			Port:         v.GetInt("http_server.port"),
			ReadTimeout:  v.GetDuration("http_server.read_timeout"),
			WriteTimeout: v.GetDuration("http_server.write_timeout"),
		},
		Database: Database{
			Driver:   v.GetString("database.driver"),
			Username: v.GetString("database.username"),
			Password: v.GetString("database.password"),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			DbName:   v.GetString("database.db_name"),
			SSLMode:  v.GetString("database.ssl_mode"),
			MaxConns: v.GetInt32("database.max_conns"),
		},
		Auth: Auth{
			JWTSecret:  v.GetString("auth.jwt_secret"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
			Issuer:     v.GetString("auth.issuer"),
			BcryptCost: v.GetInt("auth.bcrypt_cost"),
		},
		Prometheus: Prometheus{
			Address: v.GetString("prometheus.address"),
			Port:    v.GetInt("prometheus.port"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("http_server.address", "0.0.0.0")
	v.SetDefault("http_server.port", 3000)
	v.SetDefault("http_server.read_timeout", "15s")
	v.SetDefault("http_server.write_timeout", "15s")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "admin")
	v.SetDefault("database.host", "blog-db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.db_name", "blog")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "60m")
	v.SetDefault("auth.issuer", "blog-service")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("prometheus.address", "0.0.0.0")
	v.SetDefault("prometheus.port", 9103)
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return errors.New("database.driver must be postgres or memory")
	}
	return nil
}

func (d Database) DSN() string {
	dsn := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.DbName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return dsn.String()
}
