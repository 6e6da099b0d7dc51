package config

// EnvPrefix scopes envconfig processing; individual fields carry explicit
// SMARTBRIDGE_ tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "SMARTBRIDGE_APP_ENV"
	EnvPort       = "SMARTBRIDGE_APP_PORT"
	EnvDBDSN      = "SMARTBRIDGE_DB_DSN"
	EnvDBHost     = "SMARTBRIDGE_DB_HOST"
	EnvDBUser     = "SMARTBRIDGE_DB_USER"
	EnvDBName     = "SMARTBRIDGE_DB_NAME"
	EnvJWTSecret  = "SMARTBRIDGE_JWT_SECRET"
	EnvJWTIssuer  = "SMARTBRIDGE_JWT_ISSUER"
	EnvJWTExpMins = "SMARTBRIDGE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
