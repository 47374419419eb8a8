/*
Package resolve builds the canonical domain.Config of an instrumentation call site.

There is one canonical constructor, New, taking the two required values
(severity and message) plus functional options for everything else:

	cfg, err := resolve.New(domain.SeverityDebug, "cart items",
		resolve.WithStackTrace(),
		resolve.OnFinalize(),
	)

Defaults: verbose is true, stack capture is off, no lifecycle records are
selected and there is no caller tag.

The historical call shapes (optional caller tag, optional verbose flag, then
severity and message) are kept as thin constructors over New:

	resolve.TaggedVerbose("cart.go", verbose, sev, msg)
	resolve.Tagged("cart.go", sev, msg)
	resolve.Verbose(verbose, sev, msg)

Configurations arriving as loosely typed maps (profiles in a settings file)
go through Decode. Every constructor fails fast with a *domain.ConfigError;
nothing defaults a missing severity or message.
*/
package resolve
