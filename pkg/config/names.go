package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "veciplaza"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "VECIPLAZA_DB_DSN"
	EnvDBHost = "VECIPLAZA_DB_HOST"
	EnvDBUser = "VECIPLAZA_DB_USER"
	EnvDBName = "VECIPLAZA_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
