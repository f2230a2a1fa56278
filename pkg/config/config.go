package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
	IA           IAConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VECIPLAZA_APP_ENV" required:"true"`
	Port         string `envconfig:"VECIPLAZA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VECIPLAZA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VECIPLAZA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VECIPLAZA_DB_DSN"`
	Driver string `envconfig:"VECIPLAZA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"VECIPLAZA_DB_HOST"`
	Port     int    `envconfig:"VECIPLAZA_DB_PORT" default:"5432"`
	User     string `envconfig:"VECIPLAZA_DB_USER"`
	Password string `envconfig:"VECIPLAZA_DB_PASSWORD"`
	Name     string `envconfig:"VECIPLAZA_DB_NAME"`
	SSLMode  string `envconfig:"VECIPLAZA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VECIPLAZA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VECIPLAZA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VECIPLAZA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VECIPLAZA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VECIPLAZA_REDIS_URL"`
	Address      string        `envconfig:"VECIPLAZA_REDIS_ADDR"`
	Password     string        `envconfig:"VECIPLAZA_REDIS_PASSWORD"`
	DB           int           `envconfig:"VECIPLAZA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VECIPLAZA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VECIPLAZA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VECIPLAZA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VECIPLAZA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VECIPLAZA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"VECIPLAZA_CART_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VECIPLAZA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VECIPLAZA_AUTO_MIGRATE" default:"false"`
}

// IAConfig holds credentials for the optional vision-AI assistant. The feature
// itself is toggled at runtime through platform settings.
type IAConfig struct {
	APIKey string `envconfig:"VECIPLAZA_IA_API_KEY"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"VECIPLAZA_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"VECIPLAZA_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	PedidosTopic         string `envconfig:"VECIPLAZA_PUBSUB_PEDIDOS_TOPIC" default:"vp-pedido-events"`
	NotificacionesTopic  string `envconfig:"VECIPLAZA_PUBSUB_NOTIFICACIONES_TOPIC" default:"vp-notificacion-events"`
	PedidosSubscription  string `envconfig:"VECIPLAZA_PUBSUB_PEDIDOS_SUBSCRIPTION"`
	NotificacionesSubscr string `envconfig:"VECIPLAZA_PUBSUB_NOTIFICACIONES_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"VECIPLAZA_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"VECIPLAZA_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"VECIPLAZA_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
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
