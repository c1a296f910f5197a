package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	AllowedOrigins []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	JWTSecret string

	// Generative-language backend. Model and endpoint are fixed by the
	// operator; callers never pick them.
	GenAIAPIKey  string
	GenAIModel   string
	GenAIBaseURL string

	PersonaPath string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string

	SMTPHost         string
	SMTPPort         string
	SMTPUser         string
	SMTPPassword     string
	DestinationEmail string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		Addr:           getEnv("ADDR", ":8000"),
		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", ""),
		DBName:     getEnv("DB_NAME", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		GenAIAPIKey:  getEnv("GENAI_API_KEY", ""),
		GenAIModel:   getEnv("GENAI_MODEL", "gemini-1.5-flash"),
		GenAIBaseURL: getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),

		PersonaPath: getEnv("PERSONA_PATH", "./persona.yaml"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "folio-analytics"),

		SMTPHost:         getEnv("SMTP_HOST", "smtp.mail.me.com"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUser:         getEnv("EMAIL_USER", ""),
		SMTPPassword:     getEnv("EMAIL_PASSWORD", ""),
		DestinationEmail: getEnv("DESTINATION_EMAIL", ""),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
