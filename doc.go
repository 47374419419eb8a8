/*
Package sonda is a debugging instrumentation library for reactive pipelines and state stores.

It wraps observable streams, store snapshot feeds and dispatch functions with logging that is
transparent to the wrapped code: values, errors, completion and return values pass through
unchanged, and a failing log sink never reaches the pipeline.

# Concept

A Probe bundles three things:

  - A Gate: process-wide switches (severity threshold, enabled flag, caller tags, dev mode).
  - A Sink: where records go. Any *slog.Logger is a sink; sinks implementing
    ports.RecordSink receive structured records instead.
  - A clock, used to timestamp records.

Every record is built at the call site and filtered by the gate before it is written.

# Usage

	probe := sonda.New(sonda.WithLogger(slog.Default()))

	cfg := resolve.MustNew(domain.SeverityInfo, "search results",
		resolve.WithCallerTag("SearchBox"),
		resolve.OnFinalize(),
	)
	results := sonda.Instrument(probe, source, cfg)

	dispatch, sub := sonda.Watch(probe, store)
	defer sub.Unsubscribe()
	dispatch(AddItem{ID: 7})

Severity ordering is NONE < INFO < DEBUG < ERROR. A Next or Completed record is written when the
call site is verbose, the gate is enabled, its severity reaches the threshold and the host is in
dev mode. Error records always use ERROR. Subscribed, Unsubscribed and Finalized are opt-in
through the lifecycle selector.
*/
package sonda
