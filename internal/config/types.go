package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	MigrationsDir  string
	Port           string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	Turso          TursoConfig
	Slack          SlackConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
