package config

// EnvPrefix is handed to envconfig; every field carries its full variable name.
const EnvPrefix = "MORENO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CatalogSourceStatic = "static"
	CatalogSourceDB     = "db"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv            = "MORENO_APP_ENV"
	EnvPort              = "MORENO_APP_PORT"
	EnvQuoteContactID    = "MORENO_QUOTE_CONTACT_ID"
	EnvQuoteMessagingURL = "MORENO_QUOTE_MESSAGING_URL"
	EnvQuoteVATRate      = "MORENO_QUOTE_VAT_RATE"
	EnvCatalogSource     = "MORENO_CATALOG_SOURCE"
	EnvDBDSN             = "MORENO_DB_DSN"
	EnvDBDriver          = "MORENO_DB_DRIVER"
	EnvDBHost            = "MORENO_DB_HOST"
	EnvDBUser            = "MORENO_DB_USER"
	EnvDBName            = "MORENO_DB_NAME"
	EnvRedisURL          = "MORENO_REDIS_URL"
	EnvSessionIdleTTL    = "MORENO_SESSION_IDLE_TTL"
	EnvSessionMax        = "MORENO_SESSION_MAX_SESSIONS"
)

var dbHostEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
