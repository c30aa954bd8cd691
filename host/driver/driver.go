package driver

import (
	"github.com/ardnew/usbhost/host/pipe"
	"github.com/ardnew/usbhost/usbtype"
)

// Session is the narrow view of the host a driver is given while it is
// being invoked: enough to initiate new transfers or pipes, nothing
// that would let it retain a stored back-reference past the callback
// that received it (spec §4.7, §9).
type Session interface {
	// SubmitControl begins a new control transfer bound to addr (and,
	// if the driver owns a control pipe for it, pipeID; pass
	// pipe.InvalidID otherwise). Fails with pkg.ErrWouldBlock if a
	// transfer is already active, or pkg.ErrInvalidPipe if pipeID
	// doesn't validate against addr.
	SubmitControl(addr usbtype.DeviceAddress, pipeID pipe.ID, setup usbtype.SetupPacket, dir usbtype.Direction, buf []byte) error

	// CreateControlPipe allocates a control pipe bound to addr, so the
	// driver can identify its own completions in CompletedControl rather
	// than passing pipe.InvalidID to SubmitControl. ok is false if the
	// pipe table is exhausted.
	CreateControlPipe(addr usbtype.DeviceAddress) (id pipe.ID, ok bool)

	// CreateInterruptPipe allocates an interrupt pipe for addr's given
	// endpoint. ok is false if either the bus or the pipe table is
	// exhausted.
	CreateInterruptPipe(addr usbtype.DeviceAddress, endpoint uint8, dir usbtype.Direction, size int, interval uint8) (id pipe.ID, ok bool)

	// ReleaseInterruptPipe releases a pipe previously returned by
	// CreateInterruptPipe.
	ReleaseInterruptPipe(id pipe.ID)
}

// Driver is the callback surface every function-specific driver must
// implement (spec §4.7). A driver must not retain raw buffer slices, or
// the Session it's given in Configured, past the call that provided
// them.
type Driver interface {
	// Attached is called once per newly enumerated device, before any
	// Descriptor calls for it.
	Attached(addr usbtype.DeviceAddress, speed usbtype.Speed)

	// Detached is called once a device disconnects, from any phase.
	Detached(addr usbtype.DeviceAddress)

	// Descriptor is called once per descriptor decoded during
	// discovery, in the order encountered.
	Descriptor(addr usbtype.DeviceAddress, descType uint8, data []byte)

	// Configure is called once discovery completes. Returning ok=true
	// claims the device with the given configuration value; Configure
	// is an election (see Configure in this package) — only the first
	// driver to return ok=true is honored.
	Configure(addr usbtype.DeviceAddress) (value uint8, ok bool)

	// Configured is fanned out to every driver once SET_CONFIGURATION
	// completes (spec §4.6), not just the one that won Configure.
	// session is valid only for the duration of this call.
	Configured(addr usbtype.DeviceAddress, value uint8, session Session)

	// CompletedControl reports a control transfer submitted by this
	// driver. ok is false if the transfer ended in a bus error or
	// stall rather than completing normally.
	CompletedControl(addr usbtype.DeviceAddress, pipeID pipe.ID, data []byte, ok bool)

	// CompletedIn reports an interrupt IN pipe's buffer having been
	// filled by the device; data is valid only for the duration of this
	// call.
	CompletedIn(addr usbtype.DeviceAddress, pipeID pipe.ID, data []byte)

	// CompletedOut reports an interrupt OUT pipe's buffer having been
	// drained by the device and ready to be refilled in place; buf is
	// valid only for the duration of this call.
	CompletedOut(addr usbtype.DeviceAddress, pipeID pipe.ID, buf []byte)
}

// Attached fans attached out to every driver in order (spec §4.6).
func Attached(drivers []Driver, addr usbtype.DeviceAddress, speed usbtype.Speed) {
	for _, d := range drivers {
		d.Attached(addr, speed)
	}
}

// Detached fans detached out to every driver in order.
func Detached(drivers []Driver, addr usbtype.DeviceAddress) {
	for _, d := range drivers {
		d.Detached(addr)
	}
}

// DescriptorAll fans a decoded descriptor out to every driver in order.
func DescriptorAll(drivers []Driver, addr usbtype.DeviceAddress, descType uint8, data []byte) {
	for _, d := range drivers {
		d.Descriptor(addr, descType, data)
	}
}

// Configure implements the election semantics of spec §4.6: drivers are
// walked in order, and the first one to return ok=true wins; no later
// driver is asked. Returns ok=false if none claims the device.
func Configure(drivers []Driver, addr usbtype.DeviceAddress) (value uint8, winner Driver, ok bool) {
	for _, d := range drivers {
		if v, claimed := d.Configure(addr); claimed {
			return v, d, true
		}
	}
	return 0, nil, false
}

// ConfiguredAll fans configured out to every driver in order.
func ConfiguredAll(drivers []Driver, addr usbtype.DeviceAddress, value uint8, session Session) {
	for _, d := range drivers {
		d.Configured(addr, value, session)
	}
}

// CompletedControlAll fans completed_control out to every driver in
// order; each driver is expected to ignore a pipeID it doesn't own.
func CompletedControlAll(drivers []Driver, addr usbtype.DeviceAddress, pipeID pipe.ID, data []byte, ok bool) {
	for _, d := range drivers {
		d.CompletedControl(addr, pipeID, data, ok)
	}
}

// CompletedInAll fans completed_in out to every driver in order.
func CompletedInAll(drivers []Driver, addr usbtype.DeviceAddress, pipeID pipe.ID, data []byte) {
	for _, d := range drivers {
		d.CompletedIn(addr, pipeID, data)
	}
}

// CompletedOutAll fans completed_out out to every driver in order.
func CompletedOutAll(drivers []Driver, addr usbtype.DeviceAddress, pipeID pipe.ID, buf []byte) {
	for _, d := range drivers {
		d.CompletedOut(addr, pipeID, buf)
	}
}
