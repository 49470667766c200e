package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultTeacherCode is the documented fallback for the teacher
// registration gate. It is public knowledge and therefore refused in
// production; see Validate.
const DefaultTeacherCode = "default_code"

const defaultJWTSecret = "dev_secret"

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	Registration RegistrationConfig
	Firebase     FirebaseConfig
	Uploads      UploadsConfig
	Dashboard    DashboardConfig
}

type DatabaseConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	Name                   string
	SSLMode                string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RegistrationConfig holds the shared secret gating teacher sign-up.
type RegistrationConfig struct {
	TeacherCode string
}

// FirebaseConfig carries the trusted-issuer project and the client-side
// blob served to browsers. The API key is public by design; only the
// project ID participates in token verification.
type FirebaseConfig struct {
	ProjectID         string
	APIKey            string
	AuthDomain        string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
}

// UploadsConfig controls certificate file storage.
type UploadsConfig struct {
	Dir               string
	MaxFileSizeBytes  int64
	AllowedExtensions []string
}

// DashboardConfig tunes caching of the teacher dashboard aggregates.
type DashboardConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:                   v.GetString("DB_HOST"),
		Port:                   v.GetInt("DB_PORT"),
		User:                   v.GetString("DB_USER"),
		Password:               v.GetString("DB_PASSWORD"),
		Name:                   v.GetString("DB_NAME"),
		SSLMode:                v.GetString("DB_SSL_MODE"),
		MaxOpenConns:           v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:           v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnMaxLifetimeMinutes: v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Registration = RegistrationConfig{
		TeacherCode: v.GetString("TEACHER_REGISTRATION_CODE"),
	}

	cfg.Firebase = FirebaseConfig{
		ProjectID:         v.GetString("FIREBASE_PROJECT_ID"),
		APIKey:            v.GetString("FIREBASE_API_KEY"),
		AuthDomain:        v.GetString("FIREBASE_AUTH_DOMAIN"),
		StorageBucket:     v.GetString("FIREBASE_STORAGE_BUCKET"),
		MessagingSenderID: v.GetString("FIREBASE_MESSAGING_SENDER_ID"),
		AppID:             v.GetString("FIREBASE_APP_ID"),
	}

	maxUploadSize := v.GetInt64("UPLOAD_MAX_FILE_SIZE")
	if maxUploadSize <= 0 {
		maxUploadSize = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		Dir:               v.GetString("UPLOAD_DIR"),
		MaxFileSizeBytes:  maxUploadSize,
		AllowedExtensions: splitAndTrim(v.GetString("UPLOAD_ALLOWED_EXTENSIONS")),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled: v.GetBool("DASHBOARD_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	return cfg, nil
}

// Validate enforces secret hygiene. Production refuses the documented
// defaults outright; development merely reports them so local runs keep
// working (Warnings feeds the startup log).
func (c *Config) Validate() error {
	if c.Env != EnvProduction {
		return nil
	}
	if c.Registration.TeacherCode == DefaultTeacherCode {
		return fmt.Errorf("TEACHER_REGISTRATION_CODE must be overridden in production")
	}
	if c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be overridden in production")
	}
	return nil
}

// Warnings lists configuration weaknesses worth logging at startup.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Registration.TeacherCode == DefaultTeacherCode {
		warnings = append(warnings, "teacher registration code is the documented default; override TEACHER_REGISTRATION_CODE")
	}
	if c.JWT.Secret == defaultJWTSecret {
		warnings = append(warnings, "JWT secret is the development default; override JWT_SECRET")
	}
	if c.Firebase.ProjectID == "" {
		warnings = append(warnings, "FIREBASE_PROJECT_ID is not set; federated token verification will be skipped")
	}
	return warnings
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ams")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "ams-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TEACHER_REGISTRATION_CODE", DefaultTeacherCode)

	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_API_KEY", "")
	v.SetDefault("FIREBASE_AUTH_DOMAIN", "")
	v.SetDefault("FIREBASE_STORAGE_BUCKET", "")
	v.SetDefault("FIREBASE_MESSAGING_SENDER_ID", "")
	v.SetDefault("FIREBASE_APP_ID", "")

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("UPLOAD_ALLOWED_EXTENSIONS", "pdf,png,jpg,jpeg")

	v.SetDefault("DASHBOARD_CACHE_ENABLED", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
