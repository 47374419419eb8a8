/*
Package stream attaches diagnostic logging to a reactive stream without
changing what the stream does.

Instrument wraps any ports.Observable. The returned observable forwards every
value, error and completion of the source unchanged, inline and in order, and
writes a domain.LogRecord for the lifecycle points the configuration and the
gate allow:

	cfg := resolve.MustNew(domain.SeverityDebug, "cart items", resolve.OnFinalize())
	items = stream.Instrument(in, items, cfg)

Gating rules:

  - Next and Completed: enabled && devMode && verbose && severity >= threshold.
  - Error: enabled && devMode && verbose && ERROR >= threshold. The configured
    severity is not consulted, so errors surface even from INFO call sites.
  - Subscribed, Unsubscribed, Finalized: only when selected, and only
    enabled && devMode && verbose. Severity is not consulted.

Finalized fires exactly once per subscription, whether it ends by completion,
error or early unsubscription.

The package also carries a few tiny host observables (Of, Fail, Subject, New)
used by tests, examples and the demo command.
*/
package stream
