package pipe

import (
	"github.com/ardnew/usbhost/host/hal"
	"github.com/ardnew/usbhost/usbtype"
)

// Capacity is the fixed number of slots in a Table (spec §4.5, §9).
const Capacity = 32

// ID is an opaque handle into a Table: a small integer index, stable
// for the lifetime of the pipe it names. The zero value is not special;
// callers distinguish "no pipe" with a separate bool or a negative
// sentinel, never with ID(0).
type ID int

// InvalidID is the sentinel used where "no pipe" must be distinguished
// from a valid, zero-valued ID.
const InvalidID ID = -1

// Kind tags which variant of Pipe a slot holds. Go has no closed sum
// type, so Pipe carries both field sets with Kind selecting which is
// meaningful.
type Kind uint8

const (
	KindControl Kind = iota
	KindInterrupt
)

// Pipe is a single table slot. Fields not relevant to Kind are zero.
type Pipe struct {
	Kind Kind

	// Address is the owning device's address. Meaningful for both kinds.
	Address usbtype.DeviceAddress

	// Interrupt-only fields.
	Ref       hal.BusRef
	Direction usbtype.Direction
	Size      int
	Buffer    []byte
}

// Table is a fixed-capacity pipe table (spec §4.5).
type Table struct {
	slots [Capacity]Pipe
	used  [Capacity]bool
}

// CreateControlPipe occupies the first empty slot and binds it to addr
// as a control pipe. Returns InvalidID if the table is full.
func (t *Table) CreateControlPipe(addr usbtype.DeviceAddress) ID {
	for i := range t.slots {
		if !t.used[i] {
			t.slots[i] = Pipe{Kind: KindControl, Address: addr}
			t.used[i] = true
			return ID(i)
		}
	}
	return InvalidID
}

// CreateInterruptPipe asks bus to allocate a hardware slot, then records
// it in the first empty table slot. If the bus allocation succeeds but
// the table is full, the bus slot is immediately released to avoid a
// resource leak, and InvalidID is returned.
func (t *Table) CreateInterruptPipe(bus hal.Bus, addr usbtype.DeviceAddress, endpoint uint8, dir usbtype.Direction, size int, interval uint8) ID {
	buf, ref, ok := bus.CreateInterruptPipe(addr, endpoint, dir, size, interval)
	if !ok {
		return InvalidID
	}

	for i := range t.slots {
		if !t.used[i] {
			t.slots[i] = Pipe{
				Kind:      KindInterrupt,
				Address:   addr,
				Ref:       ref,
				Direction: dir,
				Size:      size,
				Buffer:    buf,
			}
			t.used[i] = true
			return ID(i)
		}
	}

	bus.ReleaseInterruptPipe(ref)
	return InvalidID
}

// Get returns the pipe at id and whether it is occupied.
func (t *Table) Get(id ID) (Pipe, bool) {
	if id < 0 || int(id) >= Capacity || !t.used[id] {
		return Pipe{}, false
	}
	return t.slots[id], true
}

// Release invalidates id. Any later use of id is a driver bug.
func (t *Table) Release(id ID) {
	if id < 0 || int(id) >= Capacity {
		return
	}
	t.used[id] = false
	t.slots[id] = Pipe{}
}

// FindByRef returns the ID of the interrupt pipe whose BusRef is ref, or
// InvalidID if none matches.
func (t *Table) FindByRef(ref hal.BusRef) ID {
	for i := range t.slots {
		if t.used[i] && t.slots[i].Kind == KindInterrupt && t.slots[i].Ref == ref {
			return ID(i)
		}
	}
	return InvalidID
}

// ValidateControlPipe implements the four-case truth table of spec
// §4.5: whether a (device address, pipe ID) pair naming a control
// transfer's recipient is well-formed.
//
//   - (nil, InvalidID): valid — internal use during enumeration.
//   - (addr, InvalidID): valid — driver knows the address but claimed no pipe.
//   - (nil, id): invalid.
//   - (addr, id): valid iff slot id is a control pipe bound to addr.
func (t *Table) ValidateControlPipe(addr *usbtype.DeviceAddress, id ID) bool {
	if addr == nil {
		return id == InvalidID
	}
	if id == InvalidID {
		return true
	}
	p, ok := t.Get(id)
	if !ok {
		return false
	}
	return p.Kind == KindControl && p.Address == *addr
}

// ReleaseDevice clears every slot bound to addr, releasing any
// associated bus-side interrupt pipe resources, and reports whether any
// slot matched. Called on device detach.
func (t *Table) ReleaseDevice(bus hal.Bus, addr usbtype.DeviceAddress) bool {
	found := false
	for i := range t.slots {
		if t.used[i] && t.slots[i].Address == addr {
			if t.slots[i].Kind == KindInterrupt {
				bus.ReleaseInterruptPipe(t.slots[i].Ref)
			}
			t.used[i] = false
			t.slots[i] = Pipe{}
			found = true
		}
	}
	return found
}
