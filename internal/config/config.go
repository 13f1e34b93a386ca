package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	State     StateConfig     `mapstructure:"state"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Dispenser DispenserConfig `mapstructure:"dispenser"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host                    string        `mapstructure:"host"`
	Port                    int           `mapstructure:"port"`
	Mode                    string        `mapstructure:"mode"`
	ReadTimeout             time.Duration `mapstructure:"read_timeout"`
	WriteTimeout            time.Duration `mapstructure:"write_timeout"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	DB              string        `mapstructure:"db"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type StateConfig struct {
	Backend  string `mapstructure:"backend"` // "redis" | "memory" | "bolt"
	BoltPath string `mapstructure:"bolt_path"`
}

type CatalogConfig struct {
	Backend    string           `mapstructure:"backend"` // "config" | "postgres"
	Challenges []ChallengeEntry `mapstructure:"challenges"`
}

type ChallengeEntry struct {
	ID   string `mapstructure:"id"`
	Text string `mapstructure:"text"`
}

type DispenserConfig struct {
	HourlyQuota      int           `mapstructure:"hourly_quota"`
	Cooldown         time.Duration `mapstructure:"cooldown"`
	ReminderInterval time.Duration `mapstructure:"reminder_interval"`
	ReminderTitle    string        `mapstructure:"reminder_title"`
	ReminderBody     string        `mapstructure:"reminder_body"`
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml, overlays environment variables, and returns Config.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.mode", "debug")
	v.SetDefault("state.backend", "memory")
	v.SetDefault("catalog.backend", "config")
	v.SetDefault("dispenser.hourly_quota", 3)
	v.SetDefault("dispenser.cooldown", "5s")
	v.SetDefault("dispenser.reminder_interval", "60m")
	v.SetDefault("dispenser.reminder_title", "Time for a challenge")
	v.SetDefault("dispenser.reminder_body", "A fresh micro-challenge is waiting for you.")

	// Environment variable override: DATABASE_REDIS_HOST -> database.redis.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
