// Package modkit composes service modules: shared deps, functional options and
// the mount routine every module routes through
package modkit

import (
	"net/http"

	"jobmail/internal/modkit/httpkit"
	"jobmail/internal/modkit/module"
	"jobmail/internal/modkit/repokit"
	"jobmail/internal/platform/config"
	"jobmail/internal/platform/logger"
	str "jobmail/internal/platform/strings"
)

// Module is the contract api.Mount drives
type Module = module.Module

// Deps are handed to every module constructor. PG is nil when no registry is configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

// Option adjusts a module before it is built
type Option func(*Built)

func WithName(name string) Option     { return func(b *Built) { b.Name = name } }
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }
func WithSwagger(on bool) Option      { return func(b *Built) { b.SwaggerOn = on } }

// WithMiddlewares appends route middleware scoped to the module prefix
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports of the modules it depends on
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithSubrouter swaps the router the module registers on, e.g. to add a Group
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Built) { b.Subrouter = fn }
}

// WithRegister adds routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option { return func(b *Built) { b.Register = fn } }

// Built is the resolved configuration a module keeps
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies defaults then opts in order; later options win
func Build(defaults []Option, opts ...Option) Built {
	var b Built
	for _, o := range append(append([]Option(nil), defaults...), opts...) {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount routes own, then any WithRegister extras, under the module prefix
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		if b.Subrouter != nil {
			rr = b.Subrouter(rr)
		}
		own(rr)
		if b.Register != nil {
			b.Register(rr)
		}
	})
}

// ModuleName is Name or panics when it was blanked by an option
func (b Built) ModuleName() string { return str.MustString(b.Name, "module name") }
