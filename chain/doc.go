// Package chain is the public API of logchain. Most users only need to
// import this package and handler.
//
// A Chain is an ordered, immutable list of handlers. Submit walks the
// list from the front: the first handler that claims the message's
// severity performs its effect and ends the dispatch. A chain that runs
// out of handlers reports handler.ErrUnhandled; nothing is dropped
// silently.
//
// Chains are assembled with the Builder, which validates the wiring once
// at construction time:
//
//	c, err := chain.NewBuilder().
//	    Then(handler.NewWarningHandler(handler.ConsoleConfig{})).
//	    Then(errorHandler).
//	    Then(handler.NewFatalErrorHandler()).
//	    Then(handler.NewUnknownHandler()).
//	    Build()
//
// Order matters. When two handlers claim the same severity the earlier
// one wins and the later one is never reached for it; Build logs such
// shadowed handlers and Order reports the effective order.
//
// Default builds the standard Warning, Error, FatalError, Unknown chain.
//
// A built Chain holds no mutable topology and is safe for concurrent use.
// Dispatch is synchronous and bounded by the number of handlers.
package chain
