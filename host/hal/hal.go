package hal

import "github.com/ardnew/usbhost/usbtype"

// BusRef is an opaque, bus-assigned handle for an interrupt pipe's
// hardware slot. It is meaningful only to the Bus that issued it.
type BusRef uint16

// ErrorKind classifies a bus-reported transaction error (spec §4.1,
// §7). It mirrors pkg.ErrorKind one-for-one; the two are kept distinct
// because this package must not import pkg's sentinel errors into the
// wire-level event shape the Bus reports.
type ErrorKind uint8

const (
	ErrorKindCrc ErrorKind = iota
	ErrorKindBitStuffing
	ErrorKindRxOverflow
	ErrorKindRxTimeout
	ErrorKindDataSequence
	ErrorKindOther
)

// EventKind identifies the logical shape of an Event returned by Poll.
type EventKind uint8

const (
	EventAttached EventKind = iota
	EventDetached
	EventTransComplete
	EventStall
	EventResume
	EventError
	EventInterruptPipe
	EventSof
)

// Event is the single unit of information Poll drains from the bus.
// Only the fields relevant to Kind are meaningful; the rest are zero.
type Event struct {
	Kind  EventKind
	Speed usbtype.Speed // EventAttached
	Err   ErrorKind     // EventError
	Ref   BusRef        // EventInterruptPipe
}

// Bus is the narrow, non-blocking contract the host orchestrator
// consumes from USB controller hardware (spec §4.1). Every method
// either completes synchronously or records work the controller
// performs asynchronously and later surfaces through Poll.
//
// Implementations are not required to be safe for concurrent use: the
// orchestrator that owns a Bus calls into it from a single logical
// thread of control (an interrupt handler or a cooperatively scheduled
// poll loop), never concurrently with itself.
type Bus interface {
	// ResetController brings the hardware up, resets internal state, and
	// enables normal event interrupts. Must not enable start-of-frame
	// interrupts.
	ResetController()

	// ResetBus issues a bus reset. Other interrupt settings are
	// preserved; SOF generation may be temporarily suspended.
	ResetBus()

	// EnableSOF turns on start-of-frame generation.
	EnableSOF()

	// SOFEnabled reports whether start-of-frame generation is active.
	SOFEnabled() bool

	// InterruptOnSOF enables or disables SOF-driven polling. Used only
	// during the enumeration settle delays.
	InterruptOnSOF(on bool)

	// SetRecipient selects the device address, endpoint, and transfer
	// type that subsequent WriteSetup/WriteDataIn/WriteDataOutPrepared
	// calls target, until replaced by another call. addr is nil for the
	// pre-enumeration device at address 0.
	SetRecipient(addr *usbtype.DeviceAddress, endpoint uint8, transferType usbtype.TransferType)

	// WriteSetup emits a SETUP transaction carrying setup. Completion is
	// reported via an EventTransComplete from Poll.
	WriteSetup(setup usbtype.SetupPacket)

	// WriteDataIn requests an IN transaction of up to length bytes using
	// the given data toggle. Completion is reported via
	// EventTransComplete; the received bytes are then available from
	// ReceivedData.
	WriteDataIn(length int, dataToggle uint8)

	// ReceivedData returns up to length bytes received by the most
	// recently completed WriteDataIn, copying into buf. It returns the
	// number of bytes copied.
	ReceivedData(length int, buf []byte) int

	// PrepareDataOut stages bytes for a subsequent WriteDataOutPrepared.
	// The staged buffer must remain valid across an intervening
	// WriteSetup so a SETUP-then-DATA-OUT sequence can reuse it.
	PrepareDataOut(data []byte)

	// WriteDataOutPrepared sends the most recently staged OUT buffer.
	// Completion is reported via EventTransComplete.
	WriteDataOutPrepared()

	// CreateInterruptPipe asks the bus to allocate a hardware slot for
	// an interrupt endpoint. On success it returns the buffer the core
	// may later observe between EventInterruptPipe and the matching
	// PipeContinue, the bus's handle for the slot, and ok=true.
	CreateInterruptPipe(addr usbtype.DeviceAddress, endpoint uint8, dir usbtype.Direction, size int, interval uint8) (buffer []byte, ref BusRef, ok bool)

	// ReleaseInterruptPipe frees a hardware slot previously returned by
	// CreateInterruptPipe. After this call the associated buffer must
	// not be accessed again.
	ReleaseInterruptPipe(ref BusRef)

	// PipeContinue signals that the buffer associated with ref has been
	// consumed (IN) or refilled (OUT) and may be reused by the bus.
	PipeContinue(ref BusRef)

	// Poll drains and returns the next pending event, or ok=false if
	// none is pending. At most one event is ever consumed per call.
	Poll() (ev Event, ok bool)
}
