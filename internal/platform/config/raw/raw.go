// Package raw reads the environment for packages config itself depends
// on, so it must not log
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view of the environment
type Conf struct{ prefix string }

// New is the unprefixed root
func New() Conf { return Conf{} }

// Prefix scopes c further
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Get returns the trimmed value of key or def
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.prefix + key)); v != "" {
		return v
	}
	return def
}

// GetBool returns key as a bool or def when unset or unparsable
func (c Conf) GetBool(key string, def bool) bool {
	v, err := strconv.ParseBool(c.Get(key, ""))
	if err != nil {
		return def
	}
	return v
}

// GetInt returns key as a non-negative int or def
func (c Conf) GetInt(key string, def int) int {
	v, err := strconv.Atoi(c.Get(key, ""))
	if err != nil || v < 0 {
		return def
	}
	return v
}
