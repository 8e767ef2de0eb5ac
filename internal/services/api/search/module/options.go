package module

import (
	"time"

	"akkadian/internal/platform/config"
)

// Options controls the corpus client
type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
}

// FromConfig reads CORE_SEARCH_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SEARCH_")
	return Options{
		BaseURL:    sc.MayString("BASE_URL", ""),
		UserAgent:  sc.MayString("UA", "akkadian-search"),
		Timeout:    sc.MayDuration("TIMEOUT", 15*time.Second),
		MaxRetries: sc.MayInt("MAX_RETRIES", 3),
		RetryBase:  sc.MayDuration("RETRY_BASE", 400*time.Millisecond),
	}
}
