package pkg

import "errors"

// Orchestration errors (spec §7).
var (
	// ErrWouldBlock indicates a control transfer was submitted while
	// another one is already active bus-wide.
	ErrWouldBlock = errors.New("would block: control transfer already active")

	// ErrInvalidPipe indicates a driver submitted with a bad or foreign PipeId.
	ErrInvalidPipe = errors.New("invalid pipe")

	// ErrPipeTableFull indicates the fixed-capacity pipe table has no free slots.
	ErrPipeTableFull = errors.New("pipe table full")

	// ErrParseError indicates a descriptor could not be decoded.
	ErrParseError = errors.New("descriptor parse error")

	// ErrNoAddress indicates the device address allocator has no address left to hand out.
	ErrNoAddress = errors.New("no address available")
)

// Bus protocol errors. These back hal.ErrorKind and the device STALL handshake.
var (
	// ErrStall indicates an endpoint stall condition.
	ErrStall = errors.New("endpoint stalled")

	// ErrCRC indicates a CRC error reported by the controller.
	ErrCRC = errors.New("CRC error")

	// ErrBitStuff indicates a bit stuffing error reported by the controller.
	ErrBitStuff = errors.New("bit stuffing error")

	// ErrRxOverflow indicates the controller's receive buffer overflowed.
	ErrRxOverflow = errors.New("receive overflow")

	// ErrRxTimeout indicates the controller timed out waiting for a response.
	ErrRxTimeout = errors.New("receive timeout")

	// ErrDataSequence indicates a data toggle (PID sequence) mismatch.
	ErrDataSequence = errors.New("data sequence error")

	// ErrBusError is the catch-all for controller error kinds not otherwise named.
	ErrBusError = errors.New("bus error")

	// ErrDescriptorTooShort indicates the descriptor data is too short to decode.
	ErrDescriptorTooShort = errors.New("descriptor too short")

	// ErrDescriptorTypeMismatch indicates the descriptor type does not match expected.
	ErrDescriptorTypeMismatch = errors.New("descriptor type mismatch")

	// ErrSetupPacketTooShort indicates the setup packet data is too short.
	ErrSetupPacketTooShort = errors.New("setup packet too short")
)

// ErrorKind identifies the specific controller error behind ErrBusError,
// matching the bus Error(kind) variants from spec §4.1 and §7.
type ErrorKind uint8

// Bus error kinds.
const (
	ErrorKindCrc ErrorKind = iota
	ErrorKindBitStuffing
	ErrorKindRxOverflow
	ErrorKindRxTimeout
	ErrorKindDataSequence
	ErrorKindOther
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindCrc:
		return "crc"
	case ErrorKindBitStuffing:
		return "bit-stuffing"
	case ErrorKindRxOverflow:
		return "rx-overflow"
	case ErrorKindRxTimeout:
		return "rx-timeout"
	case ErrorKindDataSequence:
		return "data-sequence"
	case ErrorKindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error value for this error kind.
func (k ErrorKind) Err() error {
	switch k {
	case ErrorKindCrc:
		return ErrCRC
	case ErrorKindBitStuffing:
		return ErrBitStuff
	case ErrorKindRxOverflow:
		return ErrRxOverflow
	case ErrorKindRxTimeout:
		return ErrRxTimeout
	case ErrorKindDataSequence:
		return ErrDataSequence
	default:
		return ErrBusError
	}
}
