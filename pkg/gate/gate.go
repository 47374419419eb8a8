// Package gate holds the process-wide switches deciding whether an
// instrumentation hook may log.
package gate

import (
	"sync/atomic"

	"github.com/aretw0/sonda/pkg/domain"
)

// DevModeFunc reports whether the host runs in development mode.
// Nothing is logged while it returns false.
type DevModeFunc func() bool

func alwaysDev() bool { return true }

// Gate compares event severities against a threshold.
// It is safe for concurrent use: emitters read it while another goroutine may mutate it.
type Gate struct {
	threshold  atomic.Int32
	enabled    atomic.Bool
	callerTags atomic.Bool
	devMode    atomic.Pointer[DevModeFunc]
}

// New returns a gate with threshold NONE, logging enabled, caller tags honored
// and a dev-mode predicate that always reports true.
func New() *Gate {
	g := &Gate{}
	g.reset()
	return g
}

func (g *Gate) reset() {
	g.threshold.Store(int32(domain.SeverityNone))
	g.enabled.Store(true)
	g.callerTags.Store(true)
	dev := DevModeFunc(alwaysDev)
	g.devMode.Store(&dev)
}

// Allows reports whether a record of the given severity may be logged now:
// enabled && sev >= threshold.
func (g *Gate) Allows(sev domain.Severity) bool {
	return g.enabled.Load() && sev >= g.Threshold()
}

// Threshold returns the current minimum severity.
func (g *Gate) Threshold() domain.Severity {
	return domain.Severity(g.threshold.Load())
}

// SetThreshold changes the minimum severity. Out-of-range levels are ignored.
func (g *Gate) SetThreshold(level domain.Severity) {
	if !level.Valid() {
		return
	}
	g.threshold.Store(int32(level))
}

// Enabled returns the master switch.
func (g *Gate) Enabled() bool {
	return g.enabled.Load()
}

// SetEnabled toggles the master switch.
func (g *Gate) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

// CallerTagsEnabled reports whether caller tags are attached to records.
func (g *Gate) CallerTagsEnabled() bool {
	return g.callerTags.Load()
}

// SetCallerTagsEnabled toggles caller tag prefixes.
func (g *Gate) SetCallerTagsEnabled(enabled bool) {
	g.callerTags.Store(enabled)
}

// SetDevMode replaces the dev-mode predicate. A nil predicate restores the default.
func (g *Gate) SetDevMode(fn DevModeFunc) {
	if fn == nil {
		fn = alwaysDev
	}
	g.devMode.Store(&fn)
}

// DevMode evaluates the dev-mode predicate.
func (g *Gate) DevMode() bool {
	return (*g.devMode.Load())()
}

// Active reports enabled && devMode, the condition shared by every hook
// regardless of severity.
func (g *Gate) Active() bool {
	return g.enabled.Load() && g.DevMode()
}

var global = New()

// Default returns the process-wide gate.
func Default() *Gate {
	return global
}

// SetSeverityThreshold mutates the process-wide threshold.
func SetSeverityThreshold(level domain.Severity) {
	global.SetThreshold(level)
}

// Reset restores the process-wide gate to its initial state. Meant for tests.
func Reset() {
	global.reset()
}
