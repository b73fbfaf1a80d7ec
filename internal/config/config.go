package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr    string   `yaml:"http_addr"`
	CORSOrigins []string `yaml:"cors_origins"`

	DBDriver    string `yaml:"db_driver"`
	DBDSN       string `yaml:"db_dsn"`
	DBName      string `yaml:"db_name"`
	SeedOnStart bool   `yaml:"seed_on_start"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	PriceCacheTTL time.Duration `yaml:"price_cache_ttl"`
	SubmitLimit   int           `yaml:"submit_limit"`
	SubmitWindow  time.Duration `yaml:"submit_window"`

	// rabbitMQ; empty URL keeps notification delivery in-process
	RabbitURL         string `yaml:"rabbit_url"`
	RabbitQueue       string `yaml:"rabbit_queue"`
	WorkerConcurrency int    `yaml:"worker_concurrency"`

	// gold quote provider
	GoldAPIURL     string        `yaml:"gold_api_url"`
	GoldAPIKey     string        `yaml:"gold_api_key"`
	GoldAPITimeout time.Duration `yaml:"gold_api_timeout"`

	// AI provider
	AIProvider         string `yaml:"ai_provider"`
	AIModel            string `yaml:"ai_model"`
	OpenAIBaseURL      string `yaml:"openai_base_url"`
	OpenAIAPIKey       string `yaml:"openai_api_key"`
	OpenRouterBaseURL  string `yaml:"openrouter_base_url"`
	OpenRouterAPIKey   string `yaml:"openrouter_api_key"`
	OpenRouterSiteURL  string `yaml:"openrouter_site_url"`
	OpenRouterAppName  string `yaml:"openrouter_app_name"`
	OllamaBaseURL      string `yaml:"ollama_base_url"`
	GeminiAPIKey       string `yaml:"gemini_api_key"`
	ChatHistoryFetch   int    `yaml:"chat_history_fetch"`
	ChatContextWindow  int    `yaml:"chat_context_window_size"`
	ChatCatalogueLimit int    `yaml:"chat_catalogue_limit"`

	// notifications
	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   string `yaml:"telegram_chat_id"`
	TelegramAPIURL   string `yaml:"telegram_api_url"`
	EmailProvider    string `yaml:"email_provider"`
	ResendAPIKey     string `yaml:"resend_api_key"`
	ResendAPIURL     string `yaml:"resend_api_url"`
	SenderEmail      string `yaml:"sender_email"`
	OwnerEmail       string `yaml:"owner_email"`
	SMTPHost         string `yaml:"smtp_host"`
	SMTPPort         int    `yaml:"smtp_port"`
	SMTPUser         string `yaml:"smtp_user"`
	SMTPPass         string `yaml:"smtp_pass"`

	// media host
	CloudinaryCloudName string `yaml:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `yaml:"cloudinary_api_key"`
	CloudinaryAPISecret string `yaml:"cloudinary_api_secret"`
}

func Default() Config {
	return Config{
		HTTPAddr:    ":8001",
		CORSOrigins: []string{"*"},

		DBDriver: "mysql",
		// app:apppass@tcp(127.0.0.1:3306)/goldsmith?charset=utf8mb4&parseTime=true&loc=UTC
		DBName:      "goldsmith",
		SeedOnStart: true,

		LogLevel:  "info",
		LogFormat: "json",

		RedisAddr:     "",
		PriceCacheTTL: 60 * time.Second,
		SubmitLimit:   5,
		SubmitWindow:  10 * time.Minute,

		RabbitQueue:       "notify_jobs",
		WorkerConcurrency: 2,

		GoldAPIURL:     "https://www.goldapi.io/api/XAU/INR",
		GoldAPIKey:     "goldapi-demo",
		GoldAPITimeout: 10 * time.Second,

		AIProvider:         "openai",
		AIModel:            "gpt-4o-mini",
		OpenAIBaseURL:      "https://api.openai.com/v1",
		OpenRouterBaseURL:  "https://openrouter.ai/api/v1",
		OllamaBaseURL:      "http://localhost:11434",
		ChatHistoryFetch:   20,
		ChatContextWindow:  10,
		ChatCatalogueLimit: 20,

		TelegramAPIURL: "https://api.telegram.org",
		EmailProvider:  "resend",
		ResendAPIURL:   "https://api.resend.com",
		SenderEmail:    "onboarding@resend.dev",
		SMTPPort:       587,
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and finally the process environment.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.DBDSN == "" {
		switch cfg.DBDriver {
		case "sqlite":
			cfg.DBDSN = cfg.DBName + ".db"
		default:
			cfg.DBDSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
				"app", "apppass", "127.0.0.1", "3306", cfg.DBName,
			)
		}
	}
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	str(&cfg.HTTPAddr, "HTTP_ADDR")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}

	str(&cfg.DBDriver, "DB_DRIVER")
	str(&cfg.DBDSN, "DB_DSN")
	str(&cfg.DBName, "DB_NAME")
	boolean(&cfg.SeedOnStart, "SEED_ON_START")

	str(&cfg.LogLevel, "LOG_LEVEL")
	str(&cfg.LogFormat, "LOG_FORMAT")

	str(&cfg.RedisAddr, "REDIS_ADDR")
	str(&cfg.RedisPassword, "REDIS_PASSWORD")
	integer(&cfg.RedisDB, "REDIS_DB")
	duration(&cfg.PriceCacheTTL, "PRICE_CACHE_TTL")
	integer(&cfg.SubmitLimit, "SUBMIT_LIMIT")
	duration(&cfg.SubmitWindow, "SUBMIT_WINDOW")

	str(&cfg.RabbitURL, "RABBIT_URL")
	str(&cfg.RabbitQueue, "RABBIT_QUEUE")
	integer(&cfg.WorkerConcurrency, "WORKER_CONCURRENCY")

	str(&cfg.GoldAPIURL, "GOLD_API_URL")
	str(&cfg.GoldAPIKey, "GOLD_API_KEY")
	duration(&cfg.GoldAPITimeout, "GOLD_API_TIMEOUT")

	str(&cfg.AIProvider, "AI_PROVIDER")
	str(&cfg.AIModel, "AI_MODEL")
	str(&cfg.OpenAIBaseURL, "OPENAI_BASE_URL")
	str(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	str(&cfg.OpenRouterBaseURL, "OPENROUTER_BASE_URL")
	str(&cfg.OpenRouterAPIKey, "OPENROUTER_API_KEY")
	str(&cfg.OpenRouterSiteURL, "OPENROUTER_SITE_URL")
	str(&cfg.OpenRouterAppName, "OPENROUTER_APP_NAME")
	str(&cfg.OllamaBaseURL, "OLLAMA_BASE_URL")
	str(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	integer(&cfg.ChatHistoryFetch, "CHAT_HISTORY_FETCH")
	integer(&cfg.ChatContextWindow, "CHAT_CONTEXT_WINDOW_SIZE")
	integer(&cfg.ChatCatalogueLimit, "CHAT_CATALOGUE_LIMIT")

	str(&cfg.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	str(&cfg.TelegramChatID, "TELEGRAM_CHAT_ID")
	str(&cfg.TelegramAPIURL, "TELEGRAM_API_URL")
	str(&cfg.EmailProvider, "EMAIL_PROVIDER")
	str(&cfg.ResendAPIKey, "RESEND_API_KEY")
	str(&cfg.ResendAPIURL, "RESEND_API_URL")
	str(&cfg.SenderEmail, "SENDER_EMAIL")
	str(&cfg.OwnerEmail, "OWNER_EMAIL")
	str(&cfg.SMTPHost, "SMTP_HOST")
	integer(&cfg.SMTPPort, "SMTP_PORT")
	str(&cfg.SMTPUser, "SMTP_USER")
	str(&cfg.SMTPPass, "SMTP_PASS")

	str(&cfg.CloudinaryCloudName, "CLOUDINARY_CLOUD_NAME")
	str(&cfg.CloudinaryAPIKey, "CLOUDINARY_API_KEY")
	str(&cfg.CloudinaryAPISecret, "CLOUDINARY_API_SECRET")
}

func str(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func integer(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func boolean(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// duration accepts Go duration strings ("90s") or bare seconds ("90").
func duration(dst *time.Duration, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * time.Second
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
