package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds every runtime setting. Values come from the process environment,
// optionally seeded from a .env file.
var Conf *viper.Viper

func init() {
	Conf = newViper()
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("ENV", "DEV")
	v.SetDefault("DEBUG", false)
	v.SetDefault("APP_NAME", "CourseHub")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DEFAULT_FROM_EMAIL", "noreply@localhost")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MIDTRANS_SERVER_KEY", "")
	v.SetDefault("MIDTRANS_PRODUCTION", false)

	v.AutomaticEnv()
	return v
}

// Init loads .env (when present) and rebuilds the settings and the logger.
func Init() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			Logger.WithError(err).Warn("Failed to load .env file")
		}
	}
	Conf = newViper()
	initLogger(IsDebug())
}

func IsDebug() bool {
	return Conf.GetBool("DEBUG")
}

func Env() string {
	return strings.ToUpper(Conf.GetString("ENV"))
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func AllowedOrigins() []string {
	raw := Conf.GetString("CORS_ALLOWED_ORIGINS")
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
