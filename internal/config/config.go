package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds everything both binaries read from the environment. A .env
// file in the working directory is loaded first when present; real
// environment variables win over it.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Amadeus credentials and endpoints. The endpoints are overridable so
	// tests can point the client at a local server.
	AmadeusAPIKey    string `env:"AMADEUS_API_KEY"`
	AmadeusAPISecret string `env:"AMADEUS_API_SECRET"`
	TokenURL         string `env:"AMADEUS_TOKEN_URL" envDefault:"https://test.api.amadeus.com/v1/security/oauth2/token"`
	SearchURL        string `env:"AMADEUS_SEARCH_URL" envDefault:"https://test.api.amadeus.com/v2/shopping/flight-offers"`

	// Telegram bot settings. An AuthorizedChatID of 0 disables the gate.
	TelegramToken    string `env:"TELEGRAM_BOT_TOKEN"`
	AuthorizedChatID int64  `env:"AUTHORIZED_CHAT_ID" envDefault:"0"`

	// Poller route list and alert ceiling. Defaults reproduce the demo
	// configuration the project shipped with.
	Origin        string        `env:"FAREWATCH_ORIGIN" envDefault:"LAX"`
	Destinations  []string      `env:"FAREWATCH_DESTINATIONS" envDefault:"CDG,FCO,MAD,BCN"`
	DepartureDate string        `env:"FAREWATCH_DEPARTURE_DATE" envDefault:"2025-09-22"`
	MaxPrice      string        `env:"FAREWATCH_MAX_PRICE" envDefault:"600"`
	PollInterval  time.Duration `env:"FAREWATCH_POLL_INTERVAL" envDefault:"6h"`
	MaxOffers     int           `env:"FAREWATCH_MAX_OFFERS" envDefault:"5"`

	HistoryFile  string `env:"FAREWATCH_HISTORY_FILE" envDefault:"flight_price_alert.json"`
	ErrorLogFile string `env:"FAREWATCH_ERROR_LOG" envDefault:"flight_price_alert.log"`

	LoggerLevel  string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat string `env:"LOGGER_FORMAT" envDefault:"text"`
}

func Load() (Config, error) {
	// Best effort: running without a .env file is normal in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// RequireAmadeus reports the only unrecoverable startup condition: missing
// API credentials.
func (c Config) RequireAmadeus() error {
	if c.AmadeusAPIKey == "" || c.AmadeusAPISecret == "" {
		return errors.New("AMADEUS_API_KEY and AMADEUS_API_SECRET are required")
	}
	return nil
}

func (c Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	return nil
}

// Ceiling parses the alert ceiling as a decimal price.
func (c Config) Ceiling() (decimal.Decimal, error) {
	return decimal.NewFromString(c.MaxPrice)
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
