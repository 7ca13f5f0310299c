package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// Payment processor credentials. The secret key never leaves the server;
	// the publishable key is handed to clients via /api/payments/config.
	StripeSecretKey      string
	StripePublishableKey string
	Currency             string

	JWTSecret string

	CORSAllowedOrigins string
	UploadDir          string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	currency := strings.TrimSpace(os.Getenv("PAYMENT_CURRENCY"))
	if currency == "" {
		currency = "PHP"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = "super-secret-key-change-me"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	if dbHost == "" {
		dbHost = "127.0.0.1:3306"
	}
	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	if dbUser == "" {
		dbUser = "root"
	}
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		dbName = "boardinghouse"
	}

	return Env{
		AppAddr:              appAddr,
		GinMode:              strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:               dbUser,
		DBPass:               os.Getenv("DB_PASS"),
		DBHost:               dbHost,
		DBName:               dbName,
		StripeSecretKey:      strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripePublishableKey: strings.TrimSpace(os.Getenv("STRIPE_PUBLISHABLE_KEY")),
		Currency:             currency,
		JWTSecret:            jwtSecret,
		CORSAllowedOrigins:   strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")),
		UploadDir:            uploadDir,
	}
}
