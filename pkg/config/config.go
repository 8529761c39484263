package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config configuración de la app. Orden de prioridad: variables de entorno (.env incluido),
// config.yaml y por último los valores por defecto de setDefaults.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Report    ReportConfig    `mapstructure:"report"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type AppConfig struct {
	Env  string `mapstructure:"env"` // development, staging, production
	Name string `mapstructure:"name"`
}

// IsProduction indica si los errores internos deben ocultarse al cliente.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DBConfig PostgreSQL. URL (DATABASE_URL) reemplaza a los campos sueltos.
type DBConfig struct {
	DatabaseURL string `mapstructure:"url"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"name"`
	SSLMode     string `mapstructure:"sslmode"`
	MaxConns    int    `mapstructure:"max_conns"`
	AutoMigrate bool   `mapstructure:"automigrate"` // aplica las migraciones embebidas al arrancar
}

// ConnectionString DATABASE_URL si está definido, si no DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string escapando usuario y contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// JWTConfig firma del token y cookie de sesión que lo transporta.
type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration int    `mapstructure:"expiration_minutes"`
	Issuer     string `mapstructure:"issuer"`
	CookieName string `mapstructure:"cookie_name"`
}

type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReportConfig zona usada para "hoy" y los límites de cada bucket.
type ReportConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// Location resuelve la zona horaria configurada. "Local" o vacío usan la del servidor.
func (c ReportConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE inválida: %w", err)
	}
	return loc, nil
}

// RateLimitConfig límite de peticiones por empresa. RPS <= 0 lo desactiva.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

// Load carga .env (si existe) en el entorno, luego config.yaml y las variables de entorno.
// Nombres: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, RATE_LIMIT_RPS, etc.
func Load() (*Config, error) {
	_ = godotenv.Load() // sin .env se usa solo el entorno

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("leer config.yaml: %w", err)
		}
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Nombres históricos que no siguen el patrón SECCIÓN_CLAVE.
	_ = v.BindEnv("db.url", "DATABASE_URL")
	_ = v.BindEnv("jwt.cookie_name", "SESSION_COOKIE")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decodificar configuración: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	for key, val := range map[string]any{
		"app.env":                "development",
		"app.name":               "gestion-stock",
		"log.level":              "info",
		"db.url":                 "",
		"db.host":                "localhost",
		"db.port":                5432,
		"db.user":                "postgres",
		"db.password":            "",
		"db.name":                "gestion_stock",
		"db.sslmode":             "disable",
		"db.max_conns":           25,
		"db.automigrate":         false,
		"jwt.secret":             "",
		"jwt.expiration_minutes": 60,
		"jwt.issuer":             "gestion-stock",
		"jwt.cookie_name":        "session",
		"http.host":              "0.0.0.0",
		"http.port":              8080,
		"report.timezone":        "Local",
		"rate_limit.rps":         10.0,
		"rate_limit.burst":       20,
	} {
		v.SetDefault(key, val)
	}
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" && c.App.IsProduction() {
		return errors.New("JWT_SECRET es obligatorio en producción")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MINUTES debe ser positivo: %d", c.JWT.Expiration)
	}
	if _, err := c.Report.Location(); err != nil {
		return err
	}
	return nil
}
