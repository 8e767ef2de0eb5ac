package modkit

import "net/http"

// Option adjusts how a module is built
type Option func(*Built)

// WithName overrides the module's registry name
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix overrides the path the module mounts under
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends middleware run only for this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes from other modules. The
// type is declared by the consuming module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }
