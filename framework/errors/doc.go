// Package errors provides structured error types shared by the fixture
// engine, the catalog and the fixture server.
//
// A StructuredError carries a machine-readable Code next to the message, so
// callers can branch on the kind of failure without matching strings:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeNoConstructor,
//	    "no constructors available for billing.Invoice",
//	    map[string]any{"type": "billing.Invoice"},
//	)
//
// Two StructuredErrors with the same Code compare equal under errors.Is, which
// lets packages export code-only sentinels:
//
//	var ErrNoConstructor = errors.New(errors.ErrCodeNoConstructor, "no constructors available")
//	...
//	if stderrors.Is(err, fixture.ErrNoConstructor) { ... }
package errors
