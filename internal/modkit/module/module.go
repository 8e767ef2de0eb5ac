// Package module holds the module contract, the port lookup helpers and
// the process wide registry api.Mount fills
package module

import phttp "akkadian/internal/platform/net/http"

// Module is the surface api.Mount needs from a module
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	// Ports is the module's exported port set, nil when it has none
	Ports() any
}
