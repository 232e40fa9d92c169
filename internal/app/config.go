package app

import (
	"time"

	"github.com/yungbote/writemate-backend/internal/data/db"
	"github.com/yungbote/writemate-backend/internal/platform/envutil"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
	"github.com/yungbote/writemate-backend/internal/realtime/bus"
)

type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	AutoMigrate     bool

	DB db.Config

	// LLMModel runs full analyses; LLMModelQuick serves the quick check and vocabulary prompts.
	LLMModel      string
	LLMModelQuick string

	// Redis is only used when Redis.Addr is set.
	Redis bus.RedisConfig

	AllowedOrigins []string
	ServiceName    string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:            envutil.String("PORT", "8080", log),
		ShutdownTimeout: time.Duration(envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", 15, log)) * time.Second,
		AutoMigrate:     envutil.Bool("DB_AUTO_MIGRATE", true, log),
		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", db.DriverPostgres, log),
			DSN:        envutil.String("DATABASE_URL", "", nil),
			Host:       envutil.String("POSTGRES_HOST", "localhost", log),
			Port:       envutil.String("POSTGRES_PORT", "5432", log),
			User:       envutil.String("POSTGRES_USER", "postgres", log),
			Password:   envutil.String("POSTGRES_PASSWORD", "", nil),
			Name:       envutil.String("POSTGRES_NAME", "writemate", log),
			SSLMode:    envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath: envutil.String("SQLITE_PATH", "writemate.db", log),
		},
		LLMModel:      envutil.String("LLM_MODEL", "gpt-5.2", log),
		LLMModelQuick: envutil.String("LLM_MODEL_QUICK", "gpt-5-mini", log),
		Redis: bus.RedisConfig{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", nil),
			DB:       envutil.Int("REDIS_DB", 0, log),
			Channel:  envutil.String("REDIS_CHANNEL", "writemate.events", log),
		},
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil, log),
		ServiceName:    envutil.String("OTEL_SERVICE_NAME", "writemate", log),
	}
}
