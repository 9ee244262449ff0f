package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "CONTENT_AGENT_CONFIG"
	llmProviderEnv    = "LLM_PROVIDER"
	llmModelEnv       = "LLM_MODEL"
	llmAPIKeyEnv      = "LLM_API_KEY"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	cohereAPIKeyEnv   = "COHERE_API_KEY"
	slackWebhookEnv   = "SLACK_WEBHOOK_URL"
	discordWebhookEnv = "DISCORD_WEBHOOK_URL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	seenFileEnv       = "SEEN_ARTICLES_FILE"
	brandVoiceFileEnv = "BRAND_VOICE_FILE"
	redisAddrEnv      = "REDIS_ADDR"
	redisPassEnv      = "REDIS_PASS"
	redisDBEnv        = "REDIS_DB"
	dashboardAddrEnv  = "DASHBOARD_ADDR"
	logLevelEnv       = "LOG_LEVEL"
)

// Store backends.
const (
	BackendCSV   = "csv"
	BackendRedis = "redis"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderCohere = "cohere"
)

// Scrape extractors.
const (
	ExtractorParagraphs  = "paragraphs"
	ExtractorReadability = "readability"
)

// Config holds every setting of a run. It is built once at startup and passed
// by value; nothing reads the environment after Load returns.
type Config struct {
	Feeds          []string           `yaml:"feeds"`
	BatchSize      int                `yaml:"batchSize"`
	BrandVoicePath string             `yaml:"brandVoicePath"`
	SeenStore      SeenStoreConfig    `yaml:"seenStore"`
	LLM            LLMConfig          `yaml:"llm"`
	Draft          DraftConfig        `yaml:"draft"`
	Scrape         ScrapeConfig       `yaml:"scrape"`
	Notifications  NotificationConfig `yaml:"notifications"`
	Scheduler      SchedulerConfig    `yaml:"scheduler"`
	Dashboard      DashboardConfig    `yaml:"dashboard"`
	Logging        LoggingConfig      `yaml:"logging"`
}

// SeenStoreConfig selects where processed links are recorded.
type SeenStoreConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig describes the optional set-backed store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// LLMConfig defines how to contact the language model.
type LLMConfig struct {
	Provider string        `yaml:"provider"`
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"apiKey"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DraftConfig tunes the rate-limit backoff of the draft call.
type DraftConfig struct {
	MaxRetries     int           `yaml:"maxRetries"`
	InitialBackoff time.Duration `yaml:"initialBackoff"`
}

// ScrapeConfig controls summary extraction from article pages.
type ScrapeConfig struct {
	Extractor     string        `yaml:"extractor"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxParagraphs int           `yaml:"maxParagraphs"`
	MinChars      int           `yaml:"minChars"`
	UserAgent     string        `yaml:"userAgent"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Slack    WebhookConfig  `yaml:"slack"`
	Discord  WebhookConfig  `yaml:"discord"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// WebhookConfig is a single incoming-webhook URL; empty disables it.
type WebhookConfig struct {
	WebhookURL string `yaml:"webhookUrl"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines how often watch mode runs the pipeline.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// DashboardConfig holds the listen address of the read-only web view.
type DashboardConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads .env, the YAML file at path (or $CONTENT_AGENT_CONFIG) and
// applies environment overrides on top of defaults.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load .env: %v", err)
	}

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("config: no feeds configured")
	}
	for i, feed := range c.Feeds {
		if strings.TrimSpace(feed) == "" {
			return fmt.Errorf("config: feed %d is empty", i)
		}
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("config: batchSize must be positive, got %d", c.BatchSize)
	}
	if c.Draft.MaxRetries < 1 {
		return fmt.Errorf("config: draft.maxRetries must be positive, got %d", c.Draft.MaxRetries)
	}
	if c.Draft.InitialBackoff <= 0 {
		return fmt.Errorf("config: draft.initialBackoff must be positive")
	}
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("config: scheduler.interval must be positive")
	}
	switch c.SeenStore.Backend {
	case BackendCSV:
		if c.SeenStore.Path == "" {
			return fmt.Errorf("config: seenStore.path is required for the csv backend")
		}
	case BackendRedis:
		if c.SeenStore.Redis.Addr == "" {
			return fmt.Errorf("config: seenStore.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("config: unknown seenStore.backend %q", c.SeenStore.Backend)
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderCohere:
	default:
		return fmt.Errorf("config: unknown llm.provider %q", c.LLM.Provider)
	}
	switch c.Scrape.Extractor {
	case ExtractorParagraphs, ExtractorReadability:
	default:
		return fmt.Errorf("config: unknown scrape.extractor %q", c.Scrape.Extractor)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(llmProviderEnv); v != "" && v != c.LLM.Provider {
		c.LLM.Provider = v
		c.LLM.Endpoint = ""
		c.LLM.Model = ""
	}
	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}

	// Provider-specific keys only apply when the generic one is absent.
	switch {
	case os.Getenv(llmAPIKeyEnv) != "":
		c.LLM.APIKey = os.Getenv(llmAPIKeyEnv)
	case c.LLM.Provider == ProviderCohere && os.Getenv(cohereAPIKeyEnv) != "":
		c.LLM.APIKey = os.Getenv(cohereAPIKeyEnv)
	case c.LLM.Provider == ProviderOpenAI && os.Getenv(geminiAPIKeyEnv) != "":
		c.LLM.APIKey = os.Getenv(geminiAPIKeyEnv)
	}

	if v := os.Getenv(slackWebhookEnv); v != "" {
		c.Notifications.Slack.WebhookURL = v
	}
	if v := os.Getenv(discordWebhookEnv); v != "" {
		c.Notifications.Discord.WebhookURL = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(seenFileEnv); v != "" {
		c.SeenStore.Path = v
	}
	if v := os.Getenv(brandVoiceFileEnv); v != "" {
		c.BrandVoicePath = v
	}
	if v := os.Getenv(redisAddrEnv); v != "" {
		c.SeenStore.Redis.Addr = v
	}
	if v := os.Getenv(redisPassEnv); v != "" {
		c.SeenStore.Redis.Password = v
	}
	if v := os.Getenv(redisDBEnv); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.SeenStore.Redis.DB = db
		} else {
			log.Printf("config: ignoring invalid %s=%q", redisDBEnv, v)
		}
	}

	if v := os.Getenv(dashboardAddrEnv); v != "" {
		c.Dashboard.Addr = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}
	if override.BatchSize != 0 {
		base.BatchSize = override.BatchSize
	}
	if override.BrandVoicePath != "" {
		base.BrandVoicePath = override.BrandVoicePath
	}

	if override.SeenStore.Backend != "" {
		base.SeenStore.Backend = override.SeenStore.Backend
	}
	if override.SeenStore.Path != "" {
		base.SeenStore.Path = override.SeenStore.Path
	}
	if override.SeenStore.Redis.Addr != "" {
		base.SeenStore.Redis.Addr = override.SeenStore.Redis.Addr
	}
	if override.SeenStore.Redis.Password != "" {
		base.SeenStore.Redis.Password = override.SeenStore.Redis.Password
	}
	if override.SeenStore.Redis.DB != 0 {
		base.SeenStore.Redis.DB = override.SeenStore.Redis.DB
	}
	if override.SeenStore.Redis.Key != "" {
		base.SeenStore.Redis.Key = override.SeenStore.Redis.Key
	}

	if override.LLM.Provider != "" && override.LLM.Provider != base.LLM.Provider {
		// Endpoint and model defaults belong to the default provider.
		base.LLM.Provider = override.LLM.Provider
		base.LLM.Endpoint = ""
		base.LLM.Model = ""
	}
	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.Timeout != 0 {
		base.LLM.Timeout = override.LLM.Timeout
	}

	if override.Draft.MaxRetries != 0 {
		base.Draft.MaxRetries = override.Draft.MaxRetries
	}
	if override.Draft.InitialBackoff != 0 {
		base.Draft.InitialBackoff = override.Draft.InitialBackoff
	}

	if override.Scrape.Extractor != "" {
		base.Scrape.Extractor = override.Scrape.Extractor
	}
	if override.Scrape.Timeout != 0 {
		base.Scrape.Timeout = override.Scrape.Timeout
	}
	if override.Scrape.MaxParagraphs != 0 {
		base.Scrape.MaxParagraphs = override.Scrape.MaxParagraphs
	}
	if override.Scrape.MinChars != 0 {
		base.Scrape.MinChars = override.Scrape.MinChars
	}
	if override.Scrape.UserAgent != "" {
		base.Scrape.UserAgent = override.Scrape.UserAgent
	}

	if override.Notifications.Slack.WebhookURL != "" {
		base.Notifications.Slack = override.Notifications.Slack
	}
	if override.Notifications.Discord.WebhookURL != "" {
		base.Notifications.Discord = override.Notifications.Discord
	}
	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Scheduler.Interval != 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	if override.Dashboard.Addr != "" {
		base.Dashboard.Addr = override.Dashboard.Addr
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Feeds: []string{
			"https://techcrunch.com/rss",
			"https://www.theverge.com/rss/index.xml",
			"https://blog.google/rss/",
		},
		BatchSize:      2,
		BrandVoicePath: "brand_voice.txt",
		SeenStore: SeenStoreConfig{
			Backend: BackendCSV,
			Path:    "seen_articles.csv",
			Redis:   RedisConfig{Addr: "localhost:6379", Key: "contentagent:seen"},
		},
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
			Endpoint: "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions",
			Model:    "gemini-1.5-flash",
			Timeout:  60 * time.Second,
		},
		Draft: DraftConfig{MaxRetries: 4, InitialBackoff: 15 * time.Second},
		Scrape: ScrapeConfig{
			Extractor:     ExtractorParagraphs,
			Timeout:       10 * time.Second,
			MaxParagraphs: 5,
			MinChars:      50,
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3",
		},
		Scheduler: SchedulerConfig{Interval: time.Hour},
		Dashboard: DashboardConfig{Addr: ":8080"},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}
