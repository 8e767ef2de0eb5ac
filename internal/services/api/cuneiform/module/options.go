package module

import (
	"strings"

	"akkadian/internal/core/cuneify"
	"akkadian/internal/platform/config"
)

// Options controls the default render policy
type Options struct {
	Policy    string
	Separator string
}

var escapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`)

// FromConfig reads CORE_RENDER_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("CORE_RENDER_")
	return Options{
		Policy:    rc.MayEnum("POLICY", "first", "first", "all"),
		Separator: escapes.Replace(rc.MayString("SEPARATOR", `\n`)),
	}
}

// RenderPolicy turns the options into a cuneify policy
func (o Options) RenderPolicy() cuneify.Policy {
	p, err := cuneify.ParsePolicy(o.Policy, o.Separator)
	if err != nil {
		return cuneify.DefaultPolicy
	}
	return p
}
