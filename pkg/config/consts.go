package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "agencydesk"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "AGENCYDESK_DB_DSN"
	EnvDBHost = "AGENCYDESK_DB_HOST"
	EnvDBUser = "AGENCYDESK_DB_USER"
	EnvDBName = "AGENCYDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
