package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	AdminSecret     string
	SessionTTL      time.Duration
	ResetTTL        time.Duration
	BcryptCost      int
	ClientURLs      []string
	ResetURL        string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
	// TrustProxy takes the client address from X-Real-IP or
	// X-Forwarded-For. Only enable it behind a proxy that overwrites them.
	TrustProxy      bool
	Storage         Storage
	Mail            Mail
	Log             Log
	RateLimits      RateLimits
}

type Storage struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
}

// Enabled reports whether a bucket is configured for media uploads.
func (s Storage) Enabled() bool { return s.Bucket != "" }

type Mail struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether mail is delivered over SMTP rather than logged.
func (m Mail) Enabled() bool { return m.Host != "" }

type Log struct {
	Level  string
	Format string
}

type RateLimits struct {
	LoginPerMinute    int
	RegisterPerMinute int
	ForgotPerMinute   int
	PostPerMinute     int
	CommentPerMinute  int
}

// LoadDotEnv reads the given files (".env" when none are given) into the
// environment. Variables already set win, and missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() Config {
	addr := envString("ALUMNI_ADDR", "")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}
	clients := envList("CLIENT_URL", []string{"http://localhost:5173"})
	cfg := Config{
		Addr:            addr,
		DatabaseURL:     envString("DATABASE_URL", ""),
		JWTSecret:       envString("JWT_SECRET", ""),
		AdminSecret:     envString("ADMIN_SECRET", ""),
		SessionTTL:      envDuration("SESSION_TOKEN_TTL", time.Hour),
		ResetTTL:        envDuration("RESET_TOKEN_TTL", 15*time.Minute),
		BcryptCost:      envInt("BCRYPT_COST", 0),
		ClientURLs:      clients,
		ResetURL:        envString("RESET_URL", strings.TrimRight(clients[0], "/")+"/reset-password"),
		MaxUploadBytes:  int64(envInt("MAX_UPLOAD_BYTES", 25<<20)),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrustProxy:      envBool("TRUST_PROXY", false),
		Storage: Storage{
			Endpoint:  envString("S3_ENDPOINT", ""),
			Region:    envString("S3_REGION", "us-east-1"),
			Bucket:    envString("S3_BUCKET", ""),
			AccessKey: envString("S3_ACCESS_KEY", ""),
			SecretKey: envString("S3_SECRET_KEY", ""),
			PublicURL: envString("S3_PUBLIC_URL", ""),
		},
		Mail: Mail{
			Host:     envString("SMTP_HOST", ""),
			Port:     envInt("SMTP_PORT", 587),
			Username: envString("SMTP_USER", ""),
			Password: envString("SMTP_PASS", ""),
			From:     envString("MAIL_FROM", "AlumniConnect <no-reply@alumniconnect.local>"),
		},
		Log: Log{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
		RateLimits: RateLimits{
			LoginPerMinute:    envInt("RL_LOGIN_PER_MIN", 10),
			RegisterPerMinute: envInt("RL_REGISTER_PER_MIN", 5),
			ForgotPerMinute:   envInt("RL_FORGOT_PER_MIN", 3),
			PostPerMinute:     envInt("RL_POST_PER_MIN", 20),
			CommentPerMinute:  envInt("RL_COMMENT_PER_MIN", 60),
		},
	}

	return cfg
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.SessionTTL <= 0 || c.ResetTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
