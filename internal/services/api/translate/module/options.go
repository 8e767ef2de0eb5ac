package module

import (
	"time"

	"akkadian/internal/platform/config"
)

// Options controls the translation backend and cache
type Options struct {
	URL          string
	UserAgent    string
	Timeout      time.Duration
	ChunkWords   int
	Workers      int
	Cache        bool
	CacheTimeout time.Duration

	// MaxInflight backend calls at once, Backlog more wait up to BacklogWait
	MaxInflight int
	Backlog     int
	BacklogWait time.Duration
}

// FromConfig reads CORE_TRANSLATE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	tc := cfg.Prefix("CORE_TRANSLATE_")
	return Options{
		URL:          tc.MayString("URL", ""),
		UserAgent:    tc.MayString("UA", "akkadian-translate"),
		Timeout:      tc.MayDuration("TIMEOUT", 60*time.Second),
		ChunkWords:   tc.MayIntRange("CHUNK_WORDS", 20, 1, 200),
		Workers:      tc.MayIntRange("WORKERS", 4, 1, 32),
		Cache:        tc.MayBool("CACHE", true),
		CacheTimeout: tc.MayDuration("CACHE_TIMEOUT", 2*time.Second),
		MaxInflight:  tc.MayIntRange("MAX_INFLIGHT", 8, 1, 256),
		Backlog:      tc.MayIntRange("BACKLOG", 32, 0, 1024),
		BacklogWait:  tc.MayDuration("BACKLOG_WAIT", 30*time.Second),
	}
}
