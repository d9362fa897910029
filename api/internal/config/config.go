package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	Host   string
	AppEnv string

	LLMProvider     string
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	AnthropicModel  string
	GenerateTimeout time.Duration

	TTSModel string

	LectureAPIURL    string
	TelegramBotToken string
	WebhookURL       string

	DatabaseURL string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("bad %s=%q, using %s", k, v, def)
		return def
	}
	return d
}

// Load reads the process environment. API keys are optional here: an engine
// without a key reports it on its first call.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:   getEnv("PORT", "5000"),
		Host:   getEnv("HOST", "0.0.0.0"),
		AppEnv: getEnv("APP_ENV", "development"),

		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   strings.TrimRight(getEnv("OPENAI_BASE_URL", ""), "/"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		GenerateTimeout: getDuration("GENERATE_TIMEOUT", 0),

		TTSModel: getEnv("TTS_MODEL", "tts-1"),

		LectureAPIURL:    strings.TrimRight(getEnv("LECTURE_API_URL", "http://localhost:5000"), "/"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		DatabaseURL: resolveDSN(),
	}
}

// LoadBot is Load plus the settings the Telegram front-end cannot run without.
func LoadBot() *Config {
	cfg := Load()
	cfg.TelegramBotToken = mustEnv("TELEGRAM_BOT_TOKEN")
	return cfg
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) Production() bool {
	switch strings.ToLower(c.AppEnv) {
	case "prod", "production":
		return true
	}
	return false
}

// resolveDSN prefers DATABASE_URL and otherwise builds one from POSTGRES_*/PG* vars.
// Returns "" when nothing database related is set.
func resolveDSN() string {
	if v := getEnv("DATABASE_URL", ""); v != "" {
		return v
	}
	if os.Getenv("POSTGRES_PASSWORD") == "" && os.Getenv("PGHOST") == "" {
		return ""
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("POSTGRES_USER", "lectures"), os.Getenv("POSTGRES_PASSWORD")),
		Host:     net.JoinHostPort(getEnv("PGHOST", "db"), getEnv("PGPORT", "5432")),
		Path:     "/" + getEnv("POSTGRES_DB", "lectures"),
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// SafeDSNSummary renders host/db/user of a DSN without the password.
func SafeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "dsn: parse error"
	}
	host, port := u.Host, ""
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		host, port = h, p
	}
	db := strings.TrimPrefix(u.Path, "/")
	user := u.User.Username()
	if port == "" {
		return "host=" + host + " db=" + db + " user=" + user
	}
	return "host=" + host + " port=" + port + " db=" + db + " user=" + user
}
