package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	GeminiApiKey string `json:"-"`
	GeminiModel  string
	Interview    Interview
	Redis        Redis
	RabbitMQ     RabbitMQ
	S3           S3
}

type Server struct {
	Port         string
	MaxUploadMB  int
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string `json:"-"`
	Name     string
	SSLMode  string
}

// Enabled reports whether a database host has been configured.
func (d Database) Enabled() bool { return d.Host != "" }

type Interview struct {
	QuestionCount int
}

type Redis struct {
	Addr     string
	Password string `json:"-"`
	DB       int
	TTL      time.Duration
}

type RabbitMQ struct {
	URL      string `json:"-"`
	Exchange string
}

type S3 struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string `json:"-"`
	SecretKey string `json:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "120s")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("INTERVIEW_QUESTION_COUNT", 5)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ANALYSIS_CACHE_TTL", "24h")
	v.SetDefault("EVENTS_EXCHANGE", "hirewise.events")
	v.SetDefault("S3_REGION", "auto")
}

func NewConfig() (*Config, error) {
	v := viper.GetViper()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	config := Load(v)
	log.Info().Interface("config", config).Msg("Config loaded")
	return config, nil
}

// Load builds a Config from an already populated viper instance.
func Load(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.MaxUploadMB = v.GetInt("MAX_UPLOAD_MB")
	config.Server.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	config.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	config.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")

	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")

	config.GeminiApiKey = v.GetString("GEMINI_API_KEY")
	config.GeminiModel = v.GetString("GEMINI_MODEL")

	config.Interview.QuestionCount = v.GetInt("INTERVIEW_QUESTION_COUNT")
	if config.Interview.QuestionCount <= 0 {
		config.Interview.QuestionCount = 5
	}

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.TTL = v.GetDuration("ANALYSIS_CACHE_TTL")

	config.RabbitMQ.URL = v.GetString("RABBITMQ_URL")
	config.RabbitMQ.Exchange = v.GetString("EVENTS_EXCHANGE")

	config.S3.Endpoint = v.GetString("S3_ENDPOINT")
	config.S3.Region = v.GetString("S3_REGION")
	config.S3.Bucket = v.GetString("S3_BUCKET")
	config.S3.AccessKey = v.GetString("S3_ACCESS_KEY")
	config.S3.SecretKey = v.GetString("S3_SECRET_KEY")

	return &config
}

// MaxUploadBytes is the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	if c.Server.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(c.Server.MaxUploadMB) << 20
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
