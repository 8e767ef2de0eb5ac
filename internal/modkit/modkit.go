// Package modkit is the glue api modules are built from: shared deps,
// build options and the mount helper
package modkit

import "akkadian/internal/modkit/module"

// Module is the contract every api module meets
type Module = module.Module

// Builder is the constructor shape modules export as New
type Builder func(Deps, ...Option) Module
