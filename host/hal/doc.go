// Package hal defines the narrow, non-blocking contract the host
// orchestrator consumes from USB controller hardware: the [Bus]
// interface.
//
// # Design Principles
//
// The Bus is designed to be:
//   - Minimal: only the operations the orchestrator's state machines
//     actually issue.
//   - Non-blocking: every method either completes synchronously (a
//     register write, a buffer stage) or records state on the controller
//     side and later surfaces completion through [Bus.Poll]. Nothing
//     here suspends the caller.
//   - Zero-allocation: buffer ownership crosses the boundary by pointer,
//     not by copy; see [Bus.CreateInterruptPipe].
//
// # Implementing a Bus
//
// Concrete controller drivers are external collaborators and are not
// provided here. A scripted, in-memory implementation used by this
// module's own tests is in package [github.com/ardnew/usbhost/host/hal/mock].
package hal
