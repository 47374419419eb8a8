/*
Package sink provides ports.Sink implementations and the isolated write path
every sonda record goes through.

A *slog.Logger is already a Sink. The package adds a no-op sink, a fan-out,
an in-memory Recorder, and a Prometheus-counting decorator. Write, WriteAction
and WriteState never let a sink failure escape: a panicking sink is recovered
and the record is dropped.
*/
package sink
