package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"fxpulse/internal/domain"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ProviderAlphaVantage = "alphavantage"
	ProviderTwelveData   = "twelvedata"
)

type Logging struct {
	Level string `mapstructure:"level"`
}

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Provider struct {
	Type            string `mapstructure:"type"`
	BaseURL         string `mapstructure:"base_url"`
	AlphaVantageKey string `mapstructure:"alpha_vantage_api_key"`
	TwelveDataKey   string `mapstructure:"twelve_data_api_key"`
	PrimarySymbol   string `mapstructure:"primary_symbol"`
	SecondaryFrom   string `mapstructure:"secondary_from"`
	SecondaryTo     string `mapstructure:"secondary_to"`
}

// APIKey returns the key of the selected provider and the variable it is read from.
func (p Provider) APIKey() (string, string) {
	switch p.Type {
	case ProviderTwelveData:
		return p.TwelveDataKey, "TWELVE_DATA_API_KEY"
	default:
		return p.AlphaVantageKey, "ALPHA_VANTAGE_API_KEY"
	}
}

type TelegramDestination struct {
	Name   string `mapstructure:"name"`
	Token  string `mapstructure:"token"`
	ChatID string `mapstructure:"chat_id"`
}

type Telegram struct {
	APIURL       string                `mapstructure:"api_url"`
	Destinations []TelegramDestination `mapstructure:"destinations"`
}

type Snapshot struct {
	Path string `mapstructure:"path"`
}

type Scheduler struct {
	IntervalSec int `mapstructure:"interval_sec"`
}

type AppConfig struct {
	Logging    Logging    `mapstructure:"logging"`
	HTTPServer HTTPServer `mapstructure:"http_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Provider   Provider   `mapstructure:"provider"`
	Telegram   Telegram   `mapstructure:"telegram"`
	Snapshot   Snapshot   `mapstructure:"snapshot"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
}

func (c *AppConfig) HTTPTimeout() time.Duration {
	timeout := time.Duration(c.HTTPClient.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

func (c *AppConfig) Destinations() []domain.Destination {
	out := make([]domain.Destination, 0, len(c.Telegram.Destinations))
	for _, d := range c.Telegram.Destinations {
		out = append(out, domain.Destination{Name: d.Name, Token: d.Token, ChatID: d.ChatID})
	}
	return out
}

// Validate reports missing credentials. It must pass before any network call is made.
func (c *AppConfig) Validate() error {
	if key, envName := c.Provider.APIKey(); key == "" {
		return fmt.Errorf("%s environment variable is not set: %w", envName, domain.ErrMissingCredentials)
	}
	if len(c.Telegram.Destinations) == 0 {
		return fmt.Errorf("no bot credentials found in environment variables: %w", domain.ErrMissingCredentials)
	}
	switch c.Provider.Type {
	case ProviderAlphaVantage, ProviderTwelveData:
	default:
		return fmt.Errorf("unsupported quote provider %q", c.Provider.Type)
	}
	if err := c.Provider.ValidateSymbols(); err != nil {
		return fmt.Errorf("invalid provider symbols: %w", err)
	}
	return nil
}

type Options struct {
	EnvFile    string
	ConfigFile string
}

func DefaultOptions() Options {
	return Options{EnvFile: ".env", ConfigFile: "config.yaml"}
}

// Init loads configuration with default file locations.
func Init() (*AppConfig, error) {
	return Load(DefaultOptions())
}

// Load reads an optional .env file, an optional yaml file and the process environment.
// Environment variables win over the yaml file.
func Load(opts Options) (*AppConfig, error) {
	var cfg AppConfig

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s file: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err == nil {
			v.SetConfigFile(opts.ConfigFile)
			v.SetConfigType("yaml")
			if err = v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetDefault("logging.level", "info")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("provider.type", ProviderAlphaVantage)
	v.SetDefault("provider.primary_symbol", "UUP")
	v.SetDefault("provider.secondary_from", "USD")
	v.SetDefault("provider.secondary_to", "INR")
	v.SetDefault("telegram.api_url", "https://api.telegram.org")
	v.SetDefault("snapshot.path", "last_prices.json")
	v.SetDefault("scheduler.interval_sec", 0)

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("http_server.port", "HTTP_SERVER_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// provider env vars
	_ = v.BindEnv("provider.type", "QUOTE_PROVIDER")
	_ = v.BindEnv("provider.base_url", "QUOTE_PROVIDER_BASE_URL")
	_ = v.BindEnv("provider.alpha_vantage_api_key", "ALPHA_VANTAGE_API_KEY")
	_ = v.BindEnv("provider.twelve_data_api_key", "TWELVE_DATA_API_KEY")
	_ = v.BindEnv("provider.primary_symbol", "PRIMARY_SYMBOL")
	_ = v.BindEnv("provider.secondary_from", "SECONDARY_FROM")
	_ = v.BindEnv("provider.secondary_to", "SECONDARY_TO")

	_ = v.BindEnv("telegram.api_url", "TELEGRAM_API_URL")
	_ = v.BindEnv("snapshot.path", "SNAPSHOT_PATH")
	_ = v.BindEnv("scheduler.interval_sec", "SCHEDULER_INTERVAL_SEC")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Provider.Type = strings.ToLower(strings.TrimSpace(cfg.Provider.Type))
	cfg.Provider.PrimarySymbol = strings.TrimSpace(cfg.Provider.PrimarySymbol)
	cfg.Provider.SecondaryFrom = strings.ToUpper(strings.TrimSpace(cfg.Provider.SecondaryFrom))
	cfg.Provider.SecondaryTo = strings.ToUpper(strings.TrimSpace(cfg.Provider.SecondaryTo))
	cfg.Telegram.Destinations = append(completeDestinations(cfg.Telegram.Destinations), destinationsFromEnv(os.Environ())...)

	return &cfg, nil
}

var (
	tokenVarRe = regexp.MustCompile(`^TELEGRAM_BOT_TOKEN(?:_(\d+))?$`)
	chatVarRe  = regexp.MustCompile(`^TELEGRAM_CHAT_ID(?:_(\d+))?$`)
)

// destinationsFromEnv collects TELEGRAM_BOT_TOKEN[_N] / TELEGRAM_CHAT_ID[_N] pairs.
// The unsuffixed pair is destination 1; incomplete pairs are skipped.
func destinationsFromEnv(environ []string) []TelegramDestination {
	tokens := make(map[int]string)
	chats := make(map[int]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if m := tokenVarRe.FindStringSubmatch(name); m != nil {
			tokens[suffixIndex(m[1])] = value
		} else if m = chatVarRe.FindStringSubmatch(name); m != nil {
			chats[suffixIndex(m[1])] = value
		}
	}

	indexes := make([]int, 0, len(tokens)+len(chats))
	for i := range tokens {
		indexes = append(indexes, i)
	}
	for i := range chats {
		if _, ok := tokens[i]; !ok {
			indexes = append(indexes, i)
		}
	}
	slices.Sort(indexes)

	out := make([]TelegramDestination, 0, len(indexes))
	for _, i := range indexes {
		token, chat := tokens[i], chats[i]
		if token == "" || chat == "" {
			if token != "" || chat != "" {
				logrus.Warnf("Telegram destination %d is incomplete, skipping it", i)
			}
			continue
		}
		out = append(out, TelegramDestination{Name: "bot_" + strconv.Itoa(i), Token: token, ChatID: chat})
	}
	return out
}

func completeDestinations(in []TelegramDestination) []TelegramDestination {
	out := make([]TelegramDestination, 0, len(in))
	for i, d := range in {
		if d.Token == "" || d.ChatID == "" {
			logrus.Warnf("Configured telegram destination #%d is incomplete, skipping it", i+1)
			continue
		}
		if d.Name == "" {
			d.Name = "config_" + strconv.Itoa(i+1)
		}
		out = append(out, d)
	}
	return out
}

func suffixIndex(suffix string) int {
	if suffix == "" {
		return 1
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 1
	}
	return n
}

// Labels names the two tracked prices in outgoing messages.
func (p Provider) Labels() domain.Labels {
	secondaryIcon := "💱"
	if strings.EqualFold(p.SecondaryTo, "INR") {
		secondaryIcon = "🇮🇳"
	}
	return domain.Labels{
		Primary:       fmt.Sprintf("Dollar Index ETF (%s)", p.PrimarySymbol),
		PrimaryIcon:   "💵",
		Secondary:     fmt.Sprintf("%s/%s Exchange Rate", p.SecondaryFrom, p.SecondaryTo),
		SecondaryIcon: secondaryIcon,
	}
}
