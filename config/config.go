package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the app reads from the environment. It is built
// once in main and passed down explicitly instead of living in a global.
type Config struct {
	Port string `envconfig:"PORT" default:"5000"`

	// DB
	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBHost     string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBName     string `envconfig:"DB_NAME" default:"attendfy"`

	// JWT
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// CORS
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`

	// SMTP (optional, welcome mails are skipped when host is empty)
	SMTPHost string `envconfig:"SMTP_HOST" default:""`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser string `envconfig:"SMTP_USER" default:""`
	SMTPPass string `envconfig:"SMTP_PASS" default:""`
	MailFrom string `envconfig:"MAIL_FROM" default:"no-reply@attendfy.local"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
