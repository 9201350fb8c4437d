package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rohits-web03/lyricjournal/internal/utils"
)

const generatedSecretBytes = 32

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Endpoint        string
}

// Enabled reports whether enough is configured to reach a bucket.
func (c R2Config) Enabled() bool {
	return c.BucketName != "" && (c.AccountID != "" || c.Endpoint != "")
}

type Config struct {
	Port           int
	JWTSecret      string
	TokenTTL       time.Duration
	DBFile         string
	DB_URL         string
	PublicDir      string
	Environment    string
	CorsConfig     cors.Options
	BackupSchedule string
	R2             R2Config
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env (or ENV_FILE) into the environment and builds the Config
// from it. Variables already set in the environment win over the file.
func Load(logger *zap.Logger) (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.Debug("no env file loaded", zap.String("file", envFile))
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "3000")
	v.SetDefault("TOKEN_TTL", "0")
	v.SetDefault("DB_FILE", "database.json")
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("R2_REGION", "auto")

	port, err := strconv.Atoi(strings.TrimSpace(v.GetString("PORT")))
	if err != nil || port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", v.GetString("PORT"))
	}

	ttl, err := parseTTL(v.GetString("TOKEN_TTL"))
	if err != nil {
		return Config{}, err
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		secret, err = utils.GenerateSecureToken(generatedSecretBytes)
		if err != nil {
			return Config{}, fmt.Errorf("generate jwt secret: %w", err)
		}
		logger.Warn("JWT_SECRET is not set, using a random secret; tokens will not survive a restart")
	}

	cfg := Config{
		Port:           port,
		JWTSecret:      secret,
		TokenTTL:       ttl,
		DBFile:         v.GetString("DB_FILE"),
		DB_URL:         v.GetString("DB_URL"),
		PublicDir:      v.GetString("PUBLIC_DIR"),
		Environment:    v.GetString("ENV"),
		CorsConfig:     CorsConfig(splitList(v.GetString("CORS_ORIGINS"))),
		BackupSchedule: strings.TrimSpace(v.GetString("BACKUP_SCHEDULE")),
		R2: R2Config{
			AccountID:       v.GetString("R2_ACCOUNT_ID"),
			AccessKeyID:     v.GetString("R2_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("R2_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("R2_BUCKET_NAME"),
			Region:          v.GetString("R2_REGION"),
			Endpoint:        v.GetString("R2_ENDPOINT"),
		},
	}
	if cfg.BackupSchedule != "" && !cfg.R2.Enabled() {
		return Config{}, errors.New("BACKUP_SCHEDULE is set but the R2 bucket is not configured")
	}
	return cfg, nil
}

// parseTTL accepts a Go duration ("24h") or a plain number of seconds.
func parseTTL(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("invalid TOKEN_TTL %q", raw)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid TOKEN_TTL %q", raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func CorsConfig(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
	}
}
