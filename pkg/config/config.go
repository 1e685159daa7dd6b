package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App       AppConfig
	Quote     QuoteConfig
	Catalog   CatalogConfig
	DB        DBConfig
	Redis     RedisConfig
	Sessions  SessionsConfig
	RateLimit RateLimitConfig
	HTTP      HTTPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if cfg.Catalog.UsesDB() {
		if err := cfg.DB.EnsureDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Quote.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MORENO_APP_ENV" required:"true"`
	Port         string `envconfig:"MORENO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MORENO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MORENO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// QuoteConfig holds the messaging handoff target for assembled quotes.
type QuoteConfig struct {
	BusinessName   string          `envconfig:"MORENO_QUOTE_BUSINESS_NAME" default:"Excavaciones Moreno"`
	MessagingURL   string          `envconfig:"MORENO_QUOTE_MESSAGING_URL" default:"https://wa.me"`
	ContactID      string          `envconfig:"MORENO_QUOTE_CONTACT_ID" default:"34625309277"`
	CurrencySymbol string          `envconfig:"MORENO_QUOTE_CURRENCY_SYMBOL" default:"€"`
	VATRate        decimal.Decimal `envconfig:"MORENO_QUOTE_VAT_RATE" default:"0.21"`
}

func (q QuoteConfig) validate() error {
	if strings.TrimSpace(q.ContactID) == "" {
		return fmt.Errorf("%s is required", EnvQuoteContactID)
	}
	parsed, err := url.Parse(q.MessagingURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute url", EnvQuoteMessagingURL)
	}
	if q.VATRate.IsNegative() || q.VATRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be in [0, 1), got %s", EnvQuoteVATRate, q.VATRate)
	}
	return nil
}

type CatalogConfig struct {
	Source string `envconfig:"MORENO_CATALOG_SOURCE" default:"static"`
}

// UsesDB reports whether the catalog is read from the database at startup.
func (c CatalogConfig) UsesDB() bool {
	return strings.EqualFold(strings.TrimSpace(c.Source), CatalogSourceDB)
}

func (c CatalogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Source)) {
	case CatalogSourceStatic, CatalogSourceDB:
		return nil
	}
	return fmt.Errorf("%s must be %q or %q, got %q", EnvCatalogSource, CatalogSourceStatic, CatalogSourceDB, c.Source)
}

type DBConfig struct {
	DSN    string `envconfig:"MORENO_DB_DSN"`
	Driver string `envconfig:"MORENO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"MORENO_DB_HOST"`
	Port     int    `envconfig:"MORENO_DB_PORT" default:"5432"`
	User     string `envconfig:"MORENO_DB_USER"`
	Password string `envconfig:"MORENO_DB_PASSWORD"`
	Name     string `envconfig:"MORENO_DB_NAME"`
	SSLMode  string `envconfig:"MORENO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MORENO_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"MORENO_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"MORENO_DB_CONN_MAX_LIFETIME" default:"1h"`

	AutoMigrate bool `envconfig:"MORENO_DB_AUTO_MIGRATE" default:"false"`
}

// IsSQLite reports whether the configured driver is sqlite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"MORENO_REDIS_URL"`
	Address      string        `envconfig:"MORENO_REDIS_ADDR"`
	Password     string        `envconfig:"MORENO_REDIS_PASSWORD"`
	DB           int           `envconfig:"MORENO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MORENO_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"MORENO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MORENO_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"MORENO_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionsConfig struct {
	IdleTTL       time.Duration `envconfig:"MORENO_SESSION_IDLE_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"MORENO_SESSION_SWEEP_INTERVAL" default:"5m"`
	CookieSecure  bool          `envconfig:"MORENO_SESSION_COOKIE_SECURE" default:"true"`
	MaxSessions   int           `envconfig:"MORENO_SESSION_MAX_SESSIONS" default:"10000"`
}

type RateLimitConfig struct {
	HandoffWindow time.Duration `envconfig:"MORENO_RATE_LIMIT_HANDOFF_WINDOW" default:"1m"`
	HandoffLimit  int           `envconfig:"MORENO_RATE_LIMIT_HANDOFF_LIMIT" default:"10"`
}

type HTTPConfig struct {
	ReadHeaderTimeout  time.Duration `envconfig:"MORENO_HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	ShutdownTimeout    time.Duration `envconfig:"MORENO_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSAllowedOrigins []string      `envconfig:"MORENO_HTTP_CORS_ALLOWED_ORIGINS" default:"*"`
}

// EnsureDSN builds a postgres DSN from the discrete connection fields when none was given.
func (db *DBConfig) EnsureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbHostEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
