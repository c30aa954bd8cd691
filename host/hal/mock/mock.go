// Package mock provides a scripted, in-memory implementation of
// [github.com/ardnew/usbhost/host/hal.Bus] for exercising the
// orchestrator and its state machines without real hardware.
//
// A Bus is driven by queuing events with Push* methods (simulating what
// a controller's interrupt handler would otherwise report) and letting
// the orchestrator's Poll loop drain them in order.
package mock

import (
	"github.com/ardnew/usbhost/host/hal"
	"github.com/ardnew/usbhost/usbtype"
)

const maxEvents = 64
const maxInterruptPipes = 8

// Bus is a scripted, fixed-capacity implementation of hal.Bus.
type Bus struct {
	events    [maxEvents]hal.Event
	head, len int

	sofEnabled bool
	recipient  struct {
		addrVal usbtype.DeviceAddress
		hasAddr bool
		ep      uint8
		tt      usbtype.TransferType
	}

	lastSetup    usbtype.SetupPacket
	receivedBuf  []byte
	preparedOut  []byte
	nextBusRef   hal.BusRef
	pipes        [maxInterruptPipes]mockPipe
	resetControl int
	resetBus     int

	// CompleteSetupAutomatically, when true, makes WriteSetup/WriteDataIn/
	// WriteDataOutPrepared immediately queue the matching
	// EventTransComplete instead of requiring the test to call
	// CompleteTransaction. Off by default so tests can script timing
	// precisely.
	CompleteSetupAutomatically bool
}

type mockPipe struct {
	inUse bool
	addr  usbtype.DeviceAddress
	ep    uint8
	dir   usbtype.Direction
	buf   []byte
	ref   hal.BusRef
}

// New returns an empty scripted Bus.
func New() *Bus {
	return &Bus{}
}

// --- scripting API, called by tests ---

// PushEvent queues ev to be returned by a future Poll call. Returns
// false if the event queue is full.
func (b *Bus) PushEvent(ev hal.Event) bool {
	if b.len >= maxEvents {
		return false
	}
	idx := (b.head + b.len) % maxEvents
	b.events[idx] = ev
	b.len++
	return true
}

// PushAttached is shorthand for PushEvent(hal.Event{Kind: hal.EventAttached, Speed: speed}).
func (b *Bus) PushAttached(speed usbtype.Speed) bool {
	return b.PushEvent(hal.Event{Kind: hal.EventAttached, Speed: speed})
}

// PushDetached is shorthand for PushEvent(hal.Event{Kind: hal.EventDetached}).
func (b *Bus) PushDetached() bool {
	return b.PushEvent(hal.Event{Kind: hal.EventDetached})
}

// PushSof is shorthand for PushEvent(hal.Event{Kind: hal.EventSof}).
func (b *Bus) PushSof() bool {
	return b.PushEvent(hal.Event{Kind: hal.EventSof})
}

// PushTransComplete is shorthand for PushEvent(hal.Event{Kind: hal.EventTransComplete}).
func (b *Bus) PushTransComplete() bool {
	return b.PushEvent(hal.Event{Kind: hal.EventTransComplete})
}

// PushStall is shorthand for PushEvent(hal.Event{Kind: hal.EventStall}).
func (b *Bus) PushStall() bool {
	return b.PushEvent(hal.Event{Kind: hal.EventStall})
}

// PushError is shorthand for PushEvent(hal.Event{Kind: hal.EventError, Err: kind}).
func (b *Bus) PushError(kind hal.ErrorKind) bool {
	return b.PushEvent(hal.Event{Kind: hal.EventError, Err: kind})
}

// PushInterruptPipe is shorthand for PushEvent(hal.Event{Kind: hal.EventInterruptPipe, Ref: ref}).
func (b *Bus) PushInterruptPipe(ref hal.BusRef) bool {
	return b.PushEvent(hal.Event{Kind: hal.EventInterruptPipe, Ref: ref})
}

// SetReceivedData arranges for the next ReceivedData call to copy from
// data, truncated to the caller's requested length.
func (b *Bus) SetReceivedData(data []byte) {
	b.receivedBuf = data
}

// LastSetup returns the most recently written setup packet, for test
// assertions.
func (b *Bus) LastSetup() usbtype.SetupPacket {
	return b.lastSetup
}

// PreparedOut returns the bytes most recently staged by PrepareDataOut.
func (b *Bus) PreparedOut() []byte {
	return b.preparedOut
}

// PipeBuffer returns the buffer associated with a BusRef previously
// returned by CreateInterruptPipe, for a test to fill with simulated
// device data before pushing an EventInterruptPipe.
func (b *Bus) PipeBuffer(ref hal.BusRef) []byte {
	for i := range b.pipes {
		if b.pipes[i].inUse && b.pipes[i].ref == ref {
			return b.pipes[i].buf
		}
	}
	return nil
}

// ResetControllerCount reports how many times ResetController was called.
func (b *Bus) ResetControllerCount() int { return b.resetControl }

// ResetBusCount reports how many times ResetBus was called.
func (b *Bus) ResetBusCount() int { return b.resetBus }

// --- hal.Bus implementation ---

func (b *Bus) ResetController() {
	b.resetControl++
	b.sofEnabled = false
}

func (b *Bus) ResetBus() {
	b.resetBus++
}

func (b *Bus) EnableSOF() {
	b.sofEnabled = true
}

func (b *Bus) SOFEnabled() bool {
	return b.sofEnabled
}

func (b *Bus) InterruptOnSOF(on bool) {
	b.sofEnabled = on
}

func (b *Bus) SetRecipient(addr *usbtype.DeviceAddress, endpoint uint8, transferType usbtype.TransferType) {
	if addr != nil {
		b.recipient.addrVal = *addr
		b.recipient.hasAddr = true
	} else {
		b.recipient.hasAddr = false
	}
	b.recipient.ep = endpoint
	b.recipient.tt = transferType
}

func (b *Bus) WriteSetup(setup usbtype.SetupPacket) {
	b.lastSetup = setup
	if b.CompleteSetupAutomatically {
		b.PushTransComplete()
	}
}

func (b *Bus) WriteDataIn(length int, dataToggle uint8) {
	if b.CompleteSetupAutomatically {
		b.PushTransComplete()
	}
}

func (b *Bus) ReceivedData(length int, buf []byte) int {
	n := len(b.receivedBuf)
	if n > length {
		n = length
	}
	if n > len(buf) {
		n = len(buf)
	}
	copy(buf[:n], b.receivedBuf[:n])
	return n
}

func (b *Bus) PrepareDataOut(data []byte) {
	b.preparedOut = data
}

func (b *Bus) WriteDataOutPrepared() {
	if b.CompleteSetupAutomatically {
		b.PushTransComplete()
	}
}

func (b *Bus) CreateInterruptPipe(addr usbtype.DeviceAddress, endpoint uint8, dir usbtype.Direction, size int, interval uint8) ([]byte, hal.BusRef, bool) {
	for i := range b.pipes {
		if !b.pipes[i].inUse {
			buf := make([]byte, size)
			ref := b.nextBusRef
			b.nextBusRef++
			b.pipes[i] = mockPipe{inUse: true, addr: addr, ep: endpoint, dir: dir, buf: buf, ref: ref}
			return buf, ref, true
		}
	}
	return nil, 0, false
}

func (b *Bus) ReleaseInterruptPipe(ref hal.BusRef) {
	for i := range b.pipes {
		if b.pipes[i].inUse && b.pipes[i].ref == ref {
			b.pipes[i] = mockPipe{}
		}
	}
}

func (b *Bus) PipeContinue(ref hal.BusRef) {
	// No-op: the mock has no hardware-side refill to perform.
}

func (b *Bus) Poll() (hal.Event, bool) {
	if b.len == 0 {
		return hal.Event{}, false
	}
	ev := b.events[b.head]
	b.head = (b.head + 1) % maxEvents
	b.len--
	return ev, true
}

var _ hal.Bus = (*Bus)(nil)
