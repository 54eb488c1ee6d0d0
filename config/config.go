package config

import (
	"log"
	"time"

	"quicknotes/utils"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	URL      string        // empty disables the user cache
	CacheTTL time.Duration // lifetime of a cached user
}

type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
	SigningKey string // opt-in; empty keeps the bare user id as cookie value
}

type AppConfig struct {
	Env          string
	Port         string
	MaxBodyBytes int64
	CORSOrigin   string
	Database     DatabaseConfig
	Redis        RedisConfig
	Session      SessionConfig
}

// IsDevelopment gates exposure of internal error detail.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == utils.EnvDevelopment
}

func (c AppConfig) IsProduction() bool {
	return c.Env == utils.EnvProduction
}

// LoadEnvFile loads .env outside test mode. Every setting has a default,
// so a missing file is only reported.
func LoadEnvFile() {
	if utils.AppEnv() == utils.EnvTest {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
}

func Load() AppConfig {
	env := utils.AppEnv()
	return AppConfig{
		Env:          env,
		Port:         utils.GetEnvAsString("PORT", "8080"),
		MaxBodyBytes: utils.GetEnvAsInt64("MAX_BODY_BYTES", 1<<20),
		CORSOrigin:   utils.GetEnvAsString("CORS_ALLOWED_ORIGIN", ""),
		Database:     LoadDatabaseConfig(),
		Redis: RedisConfig{
			URL:      utils.GetEnvAsString("REDIS_URL", ""),
			CacheTTL: utils.GetEnvAsDuration("USER_CACHE_TTL", 5*time.Minute),
		},
		Session: SessionConfig{
			CookieName: utils.GetEnvAsString("SESSION_COOKIE_NAME", "userId"),
			MaxAge:     utils.GetEnvAsDuration("SESSION_MAX_AGE", 30*24*time.Hour),
			Secure:     env == utils.EnvProduction,
			SigningKey: utils.GetEnvAsString("SESSION_SIGNING_KEY", ""),
		},
	}
}

// LogSummary prints which settings are in effect without leaking secrets.
func (c AppConfig) LogSummary() {
	log.Println("Configuration:")
	log.Printf("APP_ENV: %s", c.Env)
	log.Printf("PORT: %s", c.Port)
	log.Printf("MONGO_DB: %s", c.Database.DatabaseName)
	log.Printf("REDIS_URL: %s", setOrNot(c.Redis.URL))
	log.Printf("SESSION_SIGNING_KEY: %s", setOrNot(c.Session.SigningKey))
}

func setOrNot(v string) string {
	if v == "" {
		return "not set"
	}
	return "set"
}
