// Package driver defines the callback surface function-specific drivers
// (HID keyboards, hubs, loggers) must implement to participate in host
// dispatch (spec §4.7), plus the fan-out/election helpers the
// orchestrator uses to call into a list of them.
//
// Concrete drivers are external collaborators; this package only
// specifies the interface and the ordering rules. A zero-decision
// observer fixture for tests lives in the sibling package observer.
package driver
