package config

import (
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config ค่าตั้งค่าทั้งหมดของ service (อ่านจาก .env + environment)
type Config struct {
	AppURI         string
	AllowedOrigins string
	Timezone       string
	PortalURL      string

	MongoURI string
	MongoDB  string
	RedisURI string

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	GeminiAPIKey string
	SuggestModel string
	AnalyzeModel string

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	SMTPFrom      string
	InsightMailTo string

	SubmitRateLimit int
	FormCacheTTL    time.Duration
	LiveHeartbeat   time.Duration
}

var (
	conf *Config
	once sync.Once
)

// Get โหลด config ครั้งเดียวแล้วใช้ซ้ำ
func Get() *Config {
	once.Do(func() {
		// โหลดค่า Environment Variables จากไฟล์ .env (ถ้ามี)
		if err := godotenv.Load(); err != nil {
			logger.Warning("⚠️ Warning: No .env file found")
		}
		conf = FromViper(New())
	})
	return conf
}

// New builds a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("APP_URI", "8888")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("TIMEZONE", "Asia/Jakarta")
	v.SetDefault("PORTAL_URL", "http://localhost:5173/")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "TanyaPintarDB")
	v.SetDefault("REDIS_URI", "")
	v.SetDefault("JWT_SECRET", "your_secret_key") // fallback for development
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_SUGGEST_MODEL", "gemini-3-flash-preview")
	v.SetDefault("GEMINI_ANALYZE_MODEL", "gemini-3-pro-preview")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 0)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("INSIGHT_MAIL_TO", "")
	v.SetDefault("SUBMIT_RATE_LIMIT", 20)
	v.SetDefault("FORM_CACHE_TTL", 2*time.Minute)
	v.SetDefault("LIVE_HEARTBEAT", 25*time.Second)

	v.AutomaticEnv()
	return v
}

// FromViper maps viper keys to Config.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppURI:          v.GetString("APP_URI"),
		AllowedOrigins:  v.GetString("ALLOWED_ORIGINS"),
		Timezone:        v.GetString("TIMEZONE"),
		PortalURL:       v.GetString("PORTAL_URL"),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDB:         v.GetString("MONGO_DB"),
		RedisURI:        v.GetString("REDIS_URI"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTTTL:          v.GetDuration("JWT_TTL"),
		AdminEmail:      v.GetString("ADMIN_EMAIL"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		GeminiAPIKey:    v.GetString("GEMINI_API_KEY"),
		SuggestModel:    v.GetString("GEMINI_SUGGEST_MODEL"),
		AnalyzeModel:    v.GetString("GEMINI_ANALYZE_MODEL"),
		SMTPHost:        v.GetString("SMTP_HOST"),
		SMTPPort:        v.GetInt("SMTP_PORT"),
		SMTPUser:        v.GetString("SMTP_USER"),
		SMTPPass:        v.GetString("SMTP_PASS"),
		SMTPFrom:        v.GetString("SMTP_FROM"),
		InsightMailTo:   v.GetString("INSIGHT_MAIL_TO"),
		SubmitRateLimit: v.GetInt("SUBMIT_RATE_LIMIT"),
		FormCacheTTL:    v.GetDuration("FORM_CACHE_TTL"),
		LiveHeartbeat:   v.GetDuration("LIVE_HEARTBEAT"),
	}
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logger.Warningf("⚠️ Failed to load %s location, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}
