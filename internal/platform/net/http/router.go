package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the plain handler shape routes take
type Handler = func(stdhttp.ResponseWriter, *stdhttp.Request)

// Router is the routing surface modules mount against; chi is the only implementation
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(pattern string, h stdhttp.Handler)
	Use(mw ...func(stdhttp.Handler) stdhttp.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))
	Mux() stdhttp.Handler
}

type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi mux in the Router seam
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler)                         { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler)                        { c.r.Post(p, h) }
func (c chiRouter) Handle(p string, h stdhttp.Handler)              { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(stdhttp.Handler) stdhttp.Handler) { c.r.Use(mw...) }
func (c chiRouter) Mux() stdhttp.Handler                            { return c.r }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}
