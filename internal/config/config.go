package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
)

// Mail dispatch modes. In smtp mode reset emails are sent inline on
// the request path; in queue mode they are published to RabbitMQ and
// delivered by the background consumer.
const (
	MailDispatchSMTP  = "smtp"
	MailDispatchQueue = "queue"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. Broker and Redis settings
// are resolved by their own constructors (queue.BrokerURL,
// config.NewRedisClient) so they stay optional.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign bearer tokens
	FrontendURL  string // base URL embedded in reset-password links
	SMTPHost     string // SMTP server host
	SMTPPort     string // SMTP server port
	SMTPUser     string // SMTP username
	SMTPPass     string // SMTP password
	EmailFrom    string // From identity on outbound mail
	MailDispatch string // "smtp" (default) or "queue"
}

// Load reads configuration from the environment. Required variables
// are enforced by must(); missing values abort startup with a fatal
// log message.
func Load() Config {
	cfg := Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		FrontendURL:  must("FRONTEND_URL"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		EmailFrom:    os.Getenv("EMAIL_FROM"),
		MailDispatch: getenv("MAIL_DISPATCH", MailDispatchSMTP),
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUser
	}
	if cfg.MailDispatch != MailDispatchSMTP && cfg.MailDispatch != MailDispatchQueue {
		log.Fatalf("invalid MAIL_DISPATCH: %q (want %q or %q)", cfg.MailDispatch, MailDispatchSMTP, MailDispatchQueue)
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
