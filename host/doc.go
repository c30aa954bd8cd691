// Package host composes the hal.Bus, pipe.Table, enumeration.Machine,
// discovery.Machine, transfer.Control, and driver.Driver packages into
// a single cooperative, single-threaded USB host.
//
// There is no goroutine and no blocking call anywhere in this package.
// A caller drives the whole stack by calling Host.Poll once per loop
// iteration; Poll drains at most one hal.Bus event, advances whichever
// sub-state-machine owns the current phase, fans driver callbacks out
// in order, and returns immediately.
//
// # State
//
// A Host is always in exactly one of five states: Enumeration (no
// device addressed yet, or one is mid-handshake), Discovery (walking a
// newly addressed device's descriptors), Configuring (SET_CONFIGURATION
// in flight), Configured (steady state — drivers may submit control
// transfers and own interrupt pipes), or Dormant (discovery failed or
// no driver claimed the device; the device stays addressed but is
// otherwise ignored until it detaches). A stalled SET_CONFIGURATION
// leaves the Host in Configuring.
//
// # Example
//
//	h := host.New(bus)
//	drivers := []driver.Driver{myDriver}
//	for {
//	    switch h.Poll(drivers).Kind {
//	    case host.ResultBusError:
//	        // log and continue; the bus already recovered what it can
//	    }
//	}
package host
