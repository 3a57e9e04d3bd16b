package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory" // desarrollo local y demos; los datos se pierden al reiniciar
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	Store StoreConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Shop  ShopConfig
	Audit AuditConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// StoreConfig selecciona el adaptador de persistencia.
type StoreConfig struct {
	Driver string // postgres | memory
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host     string
	Port     int
	DocsFile string // documento OpenAPI para /docs; vacío = sin Swagger UI
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ShopConfig datos del local. TimeZone define el "día calendario" del dashboard.
type ShopConfig struct {
	Name     string
	TimeZone string // nombre IANA, ej. America/Bogota
}

// Location resuelve la zona horaria del local.
func (c ShopConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config: SHOP_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// AuditConfig tamaños de página del registro de auditoría.
type AuditConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, SHOP_TIMEZONE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia ya poblada (útil en pruebas).
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "phoneshop-backoffice"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "phoneshop"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StorePostgres)),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "phoneshop-backoffice"),
		},
		HTTP: HTTPConfig{
			Host:     getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:     getInt(v, "HTTP_PORT", 8080),
			DocsFile: getString(v, "HTTP_DOCS_FILE", "./docs/swagger.json"),
		},
		Shop: ShopConfig{
			Name:     getString(v, "SHOP_NAME", "Phone Shop"),
			TimeZone: getString(v, "SHOP_TIMEZONE", "Local"),
		},
		Audit: AuditConfig{
			DefaultPageSize: getInt(v, "AUDIT_PAGE_SIZE", 50),
			MaxPageSize:     getInt(v, "AUDIT_MAX_PAGE_SIZE", 200),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones imposibles antes de arrancar.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("config: STORE_DRIVER %q no soportado (postgres|memory)", c.Store.Driver)
	}
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio en production")
	}
	if c.Audit.DefaultPageSize <= 0 || c.Audit.MaxPageSize < c.Audit.DefaultPageSize {
		return fmt.Errorf("config: AUDIT_PAGE_SIZE/AUDIT_MAX_PAGE_SIZE inválidos")
	}
	if _, err := c.Shop.Location(); err != nil {
		return err
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}
