// Package config reads settings from the environment under nested
// prefixes such as CORE_API_ or SERVICE_PGSQL_
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"akkadian/internal/platform/logger"
)

// Conf is a view over the environment rooted at a prefix
type Conf struct{ prefix string }

// New is the unprefixed root
func New() Conf { return Conf{} }

// Prefix scopes c further, eg New().Prefix("CORE_").Prefix("SEARCH_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// may parses key with parse. Unset gives def; unparsable values are
// logged and also give def
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msg("unparsable setting, using default")
		return def
	}
	return v
}

// MustString panics when key is unset
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required setting")
	}
	return v
}

// MayString returns key or def
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns key as an int or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayIntRange is MayInt clamped into [lo, hi]
func (c Conf) MayIntRange(key string, def, lo, hi int) int {
	v := c.MayInt(key, def)
	if v < lo || v > hi {
		logger.Get().Warn().Str("key", c.key(key)).Int("value", v).Int("min", lo).Int("max", hi).
			Msg("setting out of range, clamping")
		v = max(lo, min(v, hi))
	}
	return v
}

// MayBool returns key as a bool (strconv.ParseBool forms) or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns key as a time.Duration or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits key on commas, dropping blanks. Unset or all blank gives def
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns key or def, matched case-insensitively against allowed.
// Anything else is a startup bug and panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	if v == "" {
		return v
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).
		Msg("setting not one of the allowed values")
	return ""
}
