package sonda

import "github.com/aretw0/sonda/pkg/sink"

// Log writes an info message when verbose is set and the host is in dev mode.
// verbose is meant as a per-file switch.
func (p *Probe) Log(verbose bool, msg string, args ...any) {
	if p.console(verbose) {
		sink.Info(p.emitter.Sink(), msg, args...)
	}
}

// Warn is Log at warning level.
func (p *Probe) Warn(verbose bool, msg string, args ...any) {
	if p.console(verbose) {
		sink.Warn(p.emitter.Sink(), msg, args...)
	}
}

// Error is Log at error level.
func (p *Probe) Error(verbose bool, msg string, args ...any) {
	if p.console(verbose) {
		sink.Error(p.emitter.Sink(), msg, args...)
	}
}

func (p *Probe) console(verbose bool) bool {
	return verbose && p.emitter.Gate().DevMode()
}
