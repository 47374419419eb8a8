package sink

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/sonda/pkg/ports"
)

var (
	sinks = map[string]ports.Sink{
		"nop":  Nop{},
		"slog": slog.Default(),
	}
	mutex sync.RWMutex
)

// Get returns a registered sink by name.
// Pre-registered sinks: "nop" (Nop) and "slog" (default logger).
func Get(name string) (ports.Sink, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	s, exists := sinks[name]
	if !exists {
		return nil, fmt.Errorf("unknown sink: %s", name)
	}
	return s, nil
}

// Register adds or replaces a named sink in the global registry.
func Register(name string, s ports.Sink) {
	mutex.Lock()
	defer mutex.Unlock()

	sinks[name] = s
}
