package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultPopularStocks is the default browsing list shown on the stocks
// page when POPULAR_STOCKS is unset.
const defaultPopularStocks = "AAPL,MSFT,AMZN,GOOGL,TSLA,NVDA,META,BRK.B,V,JNJ,WMT,JPM,MA,PG,UNH,DIS,HD,BAC,XOM,PFE,KO,PEP,CSCO,ADBE,NFLX"

// Config holds all runtime configuration, including the trading options
// (default symbol, provider token, popular-stocks list). It is built
// once at startup and treated as read-only afterwards.
type Config struct {
	Port     int
	LogLevel string

	DatabaseURL string // empty selects the in-memory store
	RedisAddr   string // empty disables the quote cache
	KafkaBroker string // empty disables order events

	FinnhubBaseURL string
	FinnhubToken   string
	FinnhubTimeout time.Duration

	DefaultStockSymbol string
	PopularStocks      []string
	QuoteCacheTTL      time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	finnhubTimeout, err := getDuration("FINNHUB_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid FINNHUB_TIMEOUT: %w", err)
	}

	quoteCacheTTL, err := getDuration("QUOTE_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_CACHE_TTL: %w", err)
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:               port,
		LogLevel:           logLevel,
		DatabaseURL:        getStr("DATABASE_URL", ""),
		RedisAddr:          getStr("REDIS_ADDR", ""),
		KafkaBroker:        getStr("KAFKA_BROKER", ""),
		FinnhubBaseURL:     getStr("FINNHUB_BASE_URL", ""),
		FinnhubToken:       getStr("FINNHUB_TOKEN", ""),
		FinnhubTimeout:     finnhubTimeout,
		DefaultStockSymbol: getStr("DEFAULT_STOCK_SYMBOL", "MSFT"),
		PopularStocks:      splitList(getStr("POPULAR_STOCKS", defaultPopularStocks)),
		QuoteCacheTTL:      quoteCacheTTL,
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		IdleTimeout:        idleTimeout,
		ShutdownTimeout:    shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
