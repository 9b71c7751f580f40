// Package module is the contract between api.Mount and each service module, plus
// the port lookup used to wire modules together at startup
package module

import (
	"fmt"
	"reflect"
	"sync"

	phttp "jobmail/internal/platform/net/http"
)

// Module mounts its routes and exposes a port set for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// PortsOf finds a T in m.Ports(): the value itself or one of its exported struct fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		if f := rv.Field(i); f.CanInterface() {
			if v, ok := f.Interface().(T); ok {
				return v, true
			}
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for startup wiring, where a missing port is a bug
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s: no %v port", m.Name(), reflect.TypeFor[T]()))
	}
	return v
}

var (
	mu       sync.RWMutex
	registry = map[string]any{}
)

// Register publishes a module's ports under its name
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ports
}

// PortsAs looks up the ports registered under name as a T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := registry[name].(T)
	return v, ok
}

// Reset empties the registry between tests
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(registry)
}
