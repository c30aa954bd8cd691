// Package observer provides a zero-decision driver.Driver fixture:
// every callback is recorded and none produce bus side effects. It
// never claims Configure, so it is safe to include alongside a real
// driver in a driver list without affecting which configuration gets
// selected.
//
// Grounded on the upstream implementation's passthrough logging and
// device-detector drivers, which are pure observation with no bus
// interaction of their own — useful here as a test conformance fixture
// rather than as a shipped driver.
package observer

import (
	"github.com/ardnew/usbhost/host/driver"
	"github.com/ardnew/usbhost/host/pipe"
	"github.com/ardnew/usbhost/usbtype"
)

// Call is one recorded invocation of a driver.Driver method.
type Call struct {
	Method  string
	Address usbtype.DeviceAddress
	Speed   usbtype.Speed
	Type    uint8
	Data    []byte
	PipeID  pipe.ID
	OK      bool
}

// Driver records every callback it receives, in order, for test
// assertions against spec §5's ordering guarantees.
type Driver struct {
	Calls []Call
}

// New returns an empty observer.
func New() *Driver {
	return &Driver{}
}

func (d *Driver) Attached(addr usbtype.DeviceAddress, speed usbtype.Speed) {
	d.Calls = append(d.Calls, Call{Method: "Attached", Address: addr, Speed: speed})
}

func (d *Driver) Detached(addr usbtype.DeviceAddress) {
	d.Calls = append(d.Calls, Call{Method: "Detached", Address: addr})
}

func (d *Driver) Descriptor(addr usbtype.DeviceAddress, descType uint8, data []byte) {
	d.Calls = append(d.Calls, Call{Method: "Descriptor", Address: addr, Type: descType, Data: append([]byte(nil), data...)})
}

// Configure never claims a device: the observer exists to watch, not to
// drive configuration choice.
func (d *Driver) Configure(addr usbtype.DeviceAddress) (uint8, bool) {
	d.Calls = append(d.Calls, Call{Method: "Configure", Address: addr})
	return 0, false
}

func (d *Driver) Configured(addr usbtype.DeviceAddress, value uint8, session driver.Session) {
	d.Calls = append(d.Calls, Call{Method: "Configured", Address: addr, Type: value})
}

func (d *Driver) CompletedControl(addr usbtype.DeviceAddress, pipeID pipe.ID, data []byte, ok bool) {
	d.Calls = append(d.Calls, Call{Method: "CompletedControl", Address: addr, PipeID: pipeID, Data: append([]byte(nil), data...), OK: ok})
}

func (d *Driver) CompletedIn(addr usbtype.DeviceAddress, pipeID pipe.ID, data []byte) {
	d.Calls = append(d.Calls, Call{Method: "CompletedIn", Address: addr, PipeID: pipeID, Data: append([]byte(nil), data...)})
}

func (d *Driver) CompletedOut(addr usbtype.DeviceAddress, pipeID pipe.ID, buf []byte) {
	d.Calls = append(d.Calls, Call{Method: "CompletedOut", Address: addr, PipeID: pipeID, Data: append([]byte(nil), buf...)})
}

// MethodNames returns the ordered sequence of method names recorded,
// for compact assertions against an expected ordering.
func (d *Driver) MethodNames() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Method
	}
	return names
}

var _ driver.Driver = (*Driver)(nil)
