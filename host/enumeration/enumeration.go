package enumeration

import (
	"github.com/ardnew/usbhost/host/hal"
	"github.com/ardnew/usbhost/host/transfer"
	"github.com/ardnew/usbhost/usbtype"
)

// SettleTicks is the number of SOF ticks each reset's settle delay
// waits, per spec §4.3.
const SettleTicks = 10

// Phase names a state in the enumeration sequence.
type Phase uint8

const (
	PhaseWaitForDevice Phase = iota
	PhaseReset0
	PhaseDelay0
	PhaseWaitDescriptor
	PhaseReset1
	PhaseDelay1
	PhaseWaitSetAddress
)

// Step describes the side effects a Handle* call requires of the host
// orchestrator: an optional disabling of the SOF interrupt, an optional
// new control transfer to submit as the host's ActiveTransfer, and, on
// the terminal transition, the assigned (speed, address) pair to hand
// off to discovery. Bus resets and SOF enables are issued by the
// Handle* methods themselves on the hal.Bus they are given; ResetBus is
// never set.
type Step struct {
	ResetBus            bool
	DisableSOFInterrupt bool
	Submit              *transfer.Control
	Done                bool
	Speed               usbtype.Speed
	Address             usbtype.DeviceAddress
}

// Machine drives one device through enumeration. The zero value starts
// in PhaseWaitForDevice, matching host construction (spec §3).
type Machine struct {
	Phase Phase

	ticks int
	speed usbtype.Speed
	addr  usbtype.DeviceAddress

	// Allocate returns the next device address to assign. Set by the
	// host orchestrator; required before the machine reaches Delay1.
	Allocate func() usbtype.DeviceAddress
}

// HandleAttached advances the machine on an Attached(speed) event.
func (m *Machine) HandleAttached(bus hal.Bus, speed usbtype.Speed) Step {
	switch m.Phase {
	case PhaseWaitForDevice:
		bus.ResetBus()
		m.Phase = PhaseReset0
	case PhaseReset0:
		bus.EnableSOF()
		bus.InterruptOnSOF(true)
		m.ticks = SettleTicks
		m.Phase = PhaseDelay0
	case PhaseReset1:
		m.speed = speed
		bus.EnableSOF()
		m.ticks = SettleTicks
		m.Phase = PhaseDelay1
	}
	return Step{}
}

// HandleSof advances the machine on an Sof tick.
func (m *Machine) HandleSof() Step {
	switch m.Phase {
	case PhaseDelay0:
		if m.ticks > 0 {
			m.ticks--
			return Step{}
		}
		setup := usbtype.NewSetupPacket(
			usbtype.DirectionIn, usbtype.RequestKindStandard, usbtype.RecipientDevice,
			usbtype.RequestGetDescriptor, uint16(usbtype.DescriptorTypeDevice)<<8, 0, 8,
		)
		m.Phase = PhaseWaitDescriptor
		return Step{Submit: transfer.New(setup, usbtype.DirectionIn, make([]byte, 8))}
	case PhaseDelay1:
		if m.ticks > 0 {
			m.ticks--
			return Step{}
		}
		m.addr = m.Allocate()
		setup := usbtype.NewSetupPacket(
			usbtype.DirectionOut, usbtype.RequestKindStandard, usbtype.RecipientDevice,
			usbtype.RequestSetAddress, uint16(m.addr), 0, 0,
		)
		m.Phase = PhaseWaitSetAddress
		return Step{Submit: transfer.New(setup, usbtype.DirectionOut, nil)}
	}
	return Step{}
}

// HandleControlInData advances the machine when the 8-byte
// device-descriptor probe completes. Its contents are discarded; it
// exists only so low-speed devices report a usable EP0 max packet size
// before the second reset.
func (m *Machine) HandleControlInData(bus hal.Bus) Step {
	if m.Phase != PhaseWaitDescriptor {
		return Step{}
	}
	bus.ResetBus()
	m.Phase = PhaseReset1
	return Step{}
}

// HandleControlOutComplete advances the machine when SET_ADDRESS
// completes, the terminal transition of enumeration.
func (m *Machine) HandleControlOutComplete() Step {
	if m.Phase != PhaseWaitSetAddress {
		return Step{}
	}
	speed, addr := m.speed, m.addr
	*m = Machine{Allocate: m.Allocate}
	return Step{DisableSOFInterrupt: true, Done: true, Speed: speed, Address: addr}
}

// HandleDetached resets the machine to PhaseWaitForDevice from any
// phase, disabling the SOF interrupt if it had been enabled.
func (m *Machine) HandleDetached() Step {
	wasWaiting := m.Phase == PhaseWaitForDevice
	allocate := m.Allocate
	*m = Machine{Allocate: allocate}
	if wasWaiting {
		return Step{}
	}
	return Step{DisableSOFInterrupt: true}
}
