// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Captcha     CaptchaConfig
	Email       EmailConfig
	Admin       AdminConfig
	CORS        CORSConfig
	Backup      BackupConfig
	Frontend    FrontendConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	SSLRootCert  string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

type CaptchaConfig struct {
	Secret    string
	VerifyURL string
	Timeout   int // in seconds
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

type AdminConfig struct {
	MasterResetPassword string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type BackupConfig struct {
	PgDumpPath string
	S3Region   string
	S3Bucket   string
	S3KeyID    string
	S3Secret   string
}

type FrontendConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "repa"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			SSLRootCert:  getEnv("DB_SSL_ROOT_CERT", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 8),
		},
		Captcha: CaptchaConfig{
			Secret:    getEnv("CAPTCHA_SECRET", ""),
			VerifyURL: getEnv("CAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
			Timeout:   getEnvAsInt("CAPTCHA_TIMEOUT", 10),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@repa.gob.mx"),
			FromName:     getEnv("FROM_NAME", "Registro REPA"),
		},
		Admin: AdminConfig{
			MasterResetPassword: getEnv("MASTER_RESET_PASSWORD", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Backup: BackupConfig{
			PgDumpPath: getEnv("PG_DUMP_PATH", "pg_dump"),
			S3Region:   getEnv("BACKUP_S3_REGION", "us-east-1"),
			S3Bucket:   getEnv("BACKUP_S3_BUCKET", ""),
			S3KeyID:    getEnv("BACKUP_S3_KEY_ID", ""),
			S3Secret:   getEnv("BACKUP_S3_SECRET", ""),
		},
		Frontend: FrontendConfig{
			BaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:8080/portal"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment != "production" {
		return nil
	}

	if c.JWT.SecretKey == "your-secret-key-change-in-production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Admin.MasterResetPassword == "" {
		return fmt.Errorf("master reset password is required in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
