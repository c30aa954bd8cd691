// Package usbtype defines the wire-level types shared across the usbhost
// stack: device addresses, connection speeds, transfer types, BCD-encoded
// version numbers, and the eight-byte SETUP packet framing used by every
// control transfer.
//
// None of these types touch the bus or allocate; they are pure value types
// decoded from or encoded to byte slices supplied by the caller, following
// the same zero-allocation convention as the rest of this stack.
package usbtype
