package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Shop      ShopConfig
	Ledger    LedgerConfig
	Client    ClientConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// DatabaseConfig selects the record store. Driver "postgres" uses the DSN
// parts below, "sqlite" keeps everything in a single file at SQLitePath.
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
	// LoginRequests per Duration seconds for POST /auth/login, per client IP
	LoginRequests int
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

type ShopConfig struct {
	Name    string
	Address string
	Phone   string
	Footer  string
}

type LedgerConfig struct {
	SalesBasis     string
	GrandTotal     string
	RequirePrice   bool
	IdempotencyTTL time.Duration
}

// ClientConfig is read by the counter CLI
type ClientConfig struct {
	APIBaseURL  string
	SessionFile string
}

type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	viper.SetDefault("APP_NAME", "mobilehub-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "mobilehub")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Karachi")
	viper.SetDefault("SQLITE_PATH", "./mobilehub.db")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Authorization,Idempotency-Key")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("RATE_LIMIT_LOGIN_REQUESTS", 10)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("SHOP_NAME", "MobileHub")
	viper.SetDefault("SHOP_ADDRESS", "")
	viper.SetDefault("SHOP_PHONE", "")
	viper.SetDefault("SHOP_FOOTER", "")
	viper.SetDefault("LEDGER_SALES_BASIS", "received")
	viper.SetDefault("RECEIPT_GRAND_TOTAL", "price")
	viper.SetDefault("VALIDATION_REQUIRE_PRICE", true)
	viper.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
	viper.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("SESSION_FILE", defaultSessionFile())
	viper.SetDefault("ADMIN_NAME", "Shop Owner")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			Timezone:   viper.GetString("DB_TIMEZONE"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests:      viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration:      viper.GetInt("RATE_LIMIT_DURATION"),
			LoginRequests: viper.GetInt("RATE_LIMIT_LOGIN_REQUESTS"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Shop: ShopConfig{
			Name:    viper.GetString("SHOP_NAME"),
			Address: viper.GetString("SHOP_ADDRESS"),
			Phone:   viper.GetString("SHOP_PHONE"),
			Footer:  viper.GetString("SHOP_FOOTER"),
		},
		Ledger: LedgerConfig{
			SalesBasis:     viper.GetString("LEDGER_SALES_BASIS"),
			GrandTotal:     viper.GetString("RECEIPT_GRAND_TOTAL"),
			RequirePrice:   viper.GetBool("VALIDATION_REQUIRE_PRICE"),
			IdempotencyTTL: time.Duration(viper.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
		Client: ClientConfig{
			APIBaseURL:  strings.TrimRight(viper.GetString("API_BASE_URL"), "/"),
			SessionFile: viper.GetString("SESSION_FILE"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
			Name:     viper.GetString("ADMIN_NAME"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// splitList reads a comma separated env value
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
