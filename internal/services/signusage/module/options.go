package module

import "akkadian/internal/platform/config"

// Options holds configuration settings for the sign usage module
type Options struct {
	HardLimit int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_STATS_")
	return Options{
		HardLimit: sf.MayIntRange("HARD_LIMIT", 100, 1, 1000),
	}
}
