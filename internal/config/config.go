package config

import "os"

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Host        string
	Port        string
	CORSOrigins string
}

type AuthConfig struct {
	JWTSecret        string
	JWTAlgorithm     string
	AccessTTLMinutes string
	RefreshTTLDays   string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Host:        getenv("API_HOST", "0.0.0.0"),
			Port:        getenv("API_PORT", "8000"),
			CORSOrigins: getenv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			JWTAlgorithm:     getenv("JWT_ALGORITHM", "HS256"),
			AccessTTLMinutes: getenv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "30"),
			RefreshTTLDays:   getenv("JWT_REFRESH_TOKEN_EXPIRE_DAYS", "7"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
