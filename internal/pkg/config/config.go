package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Share   ShareConfig
	Render  RenderConfig
	Cache   CacheConfig
	Payment PaymentConfig
	Company CompanyConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Bangkok"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Bangkok"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

// ShareConfig drives public share-token issuance and verification.
type ShareConfig struct {
	SecretKey string `envconfig:"SECRET_KEY" required:"true"`
	TTLDays   int    `envconfig:"SHARE_TOKEN_TTL_DAYS" default:"30"`
	Policy    string `envconfig:"SHARE_TOKEN_POLICY" default:"fixed_ttl"` // fixed_ttl | departure_plus_120d
}

type RenderConfig struct {
	DeadlineSeconds      int      `envconfig:"RENDER_DEADLINE_SECONDS" default:"30"`
	DefaultZoom          float64  `envconfig:"PDF_DEFAULT_ZOOM" default:"2.0"`
	ThaiFontPaths        []string `envconfig:"THAI_FONT_PATHS" default:"/usr/share/fonts/truetype/tlwg/Garuda.ttf,/usr/share/fonts/truetype/thai/NotoSansThai-Regular.ttf"`
	MaxConcurrentRenders int      `envconfig:"MAX_CONCURRENT_RENDERS" default:"0"` // 0 = ceil(cores*1.5)
	BrowserBin           string   `envconfig:"RENDER_BROWSER_BIN" default:""`
}

type CacheConfig struct {
	Dir         string `envconfig:"CACHE_DIR" default:"/var/cache/tourdesk/render"`
	MaxAgeHours int    `envconfig:"CACHE_MAX_AGE_HOURS" default:"48"`
}

type PaymentConfig struct {
	// bcrypt hash of the payment password required by mark-paid/unmark-paid
	PasswordHash string `envconfig:"PAYMENT_PASSWORD" required:"true"`
}

type CompanyConfig struct {
	Name         string `envconfig:"COMPANY_NAME" default:"Tourdesk Travel Co., Ltd."`
	ContactBlock string `envconfig:"COMPANY_CONTACT_BLOCK" default:""`
	BaseURL      string `envconfig:"COMPANY_BASE_URL" default:"http://localhost:8080"`
	ImageDir     string `envconfig:"COMPANY_IMAGE_DIR" default:"/var/lib/tourdesk/uploads"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Bangkok",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Bangkok",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		Share: ShareConfig{
			SecretKey: "test-secret-key",
			TTLDays:   30,
			Policy:    "fixed_ttl",
		},
		Render: RenderConfig{
			DeadlineSeconds: 5,
			DefaultZoom:     2.0,
		},
		Cache: CacheConfig{
			Dir:         "", // callers use t.TempDir()
			MaxAgeHours: 48,
		},
	}
}
