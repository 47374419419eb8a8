/*
Package ports defines the contracts sonda consumes from its host.

Sonda never ships a reactive-stream runtime, a state store, or a log transport
of its own: it observes whatever the host provides through these interfaces.

# Key Interfaces

  - Observable / Observer / Subscription: the reactive stream hook points
    (value, error, completion, subscription, teardown).
  - Store: a state store that publishes snapshots and accepts dispatched actions.
  - Sink: a leveled logging channel. *slog.Logger satisfies it.
  - RecordSink: an optional sink capability receiving records in structured form.
*/
package ports
