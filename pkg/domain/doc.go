/*
Package domain contains the core models shared by every sonda component.

It defines what an instrumentation call site asks for, what the gate compares,
and what reaches a sink. The package is kept pure and free of I/O so the
instrumentor, the state tracker and the dispatch interceptor can agree on the
same vocabulary without importing each other.

# Key Entities

  - Severity: ordinal level compared against the process-wide threshold.
  - Config: the resolved, per-call-site instrumentation configuration.
  - LogRecord: one observed stream lifecycle event (Next, Error, Completed, ...).
  - Snapshot / DiffRecord: state store emissions and their top-level changes.
  - ActionRecord: one dispatched action.
*/
package domain
