package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

// Ancestors Twitch currently requires on the clip embed URL. Twitch's CSP
// rejects the frame unless every possible embedding parent domain is
// declared, so this list has to track the platforms we want clip embeds to
// render on. Override with TWITCH_ANCESTORS (comma-separated).
var defaultTwitchAncestors = []string{
	"twitter.com",
	"x.com",
	"cards-frame.twitter.com",
	"tweetdeck.twitter.com",
	"discordapp.com",
	"discord.com",
	"ptb.discordapp.com",
	"ptb.discord.com",
	"canary.discordapp.com",
	"canary.discord.com",
	"embedly.com",
	"cdn.embedly.com",
	"facebook.com",
	"www.facebook.com",
	"meta.com",
	"www.meta.com",
	"vk.com",
}

type AppConfig struct {
	Addr            string
	CustomDomain    string
	RedditBaseURL   string
	RedditShortURL  string
	UserAgent       string
	ThemeColor      string
	FetchTimeout    time.Duration
	ResolverTimeout time.Duration
	TwitchAncestors []string
	AppEnv          string // EnvDevelopment or EnvProduction
	LogLevel        slog.Level
}

var Config AppConfig

func LoadConfig() {
	cfg := AppConfig{}

	cfg.AppEnv = loadOptional("APP_ENV", EnvDevelopment)
	cfg.Addr = loadOptional("ADDR", ":8080")
	cfg.CustomDomain = loadOptional("CUSTOM_DOMAIN", "rxddit.com")
	cfg.RedditBaseURL = loadOptional("REDDIT_BASE_URL", "https://www.reddit.com")
	cfg.RedditShortURL = loadOptional("REDDIT_SHORT_URL", "https://redd.it")
	cfg.UserAgent = loadOptional("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/116.0")
	cfg.ThemeColor = loadOptional("THEME_COLOR", "#ff581a")
	cfg.FetchTimeout = loadDuration("FETCH_TIMEOUT", 10*time.Second)
	cfg.ResolverTimeout = loadDuration("RESOLVER_TIMEOUT", 5*time.Second)

	if ancestors := loadOptional("TWITCH_ANCESTORS", ""); ancestors != "" {
		cfg.TwitchAncestors = splitTrimmed(ancestors)
	} else {
		cfg.TwitchAncestors = defaultTwitchAncestors
	}

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	var err error
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	Config = cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func loadDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Error("Invalid duration", "key", key, "error", err)
		return defaultValue
	}
	return d
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c AppConfig) IsProduction() bool {
	return Config.AppEnv == EnvProduction
}
