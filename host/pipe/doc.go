// Package pipe implements the host-side pipe table (spec §4.5): a
// fixed-capacity table of handles binding drivers to endpoints, covering
// both control pipes (bound only to a device address) and interrupt
// pipes (bound to a bus-allocated hardware slot and buffer).
//
// A driver holds only an opaque ID, a small integer index into the
// table; the Pipe itself — and any bus-side resources it references —
// is owned exclusively by the host orchestrator.
package pipe
