package discovery

import (
	"github.com/ardnew/usbhost/descriptor"
	"github.com/ardnew/usbhost/host/transfer"
	"github.com/ardnew/usbhost/usbtype"
)

// Phase names a state in the discovery sequence.
type Phase uint8

const (
	PhaseDeviceDesc Phase = iota
	PhaseConfigDescLen
	PhaseConfigDesc
	PhaseDone
	PhaseParseError
)

// Descriptor is one decoded descriptor to fan out to every driver via
// their descriptor(addr, type, data) method.
type Descriptor struct {
	Type uint8
	Data []byte
}

// Step describes what the host orchestrator must do after a Handle*
// call: submit a new control transfer, dispatch zero or more decoded
// descriptors to every driver, or — on Done/ParseError — stop.
type Step struct {
	Submit      *transfer.Control
	Descriptors []Descriptor
	Done        bool
	ParseError  bool

	// Device is populated once, alongside Done==false, right after the
	// device descriptor itself is decoded (during the first
	// HandleControlInData call). NumConfigurations mirrors
	// Device.NumConfigurations for convenience.
	Device            descriptor.Device
	NumConfigurations uint8
}

// Machine drives one device's discovery. Use New to construct it.
type Machine struct {
	Phase Phase

	configIndex int
	numConfigs  int

	configHeader descriptor.Configuration
}

// New returns a Machine ready for Begin.
func New() *Machine {
	return &Machine{Phase: PhaseDeviceDesc}
}

// Begin returns the initial control transfer: GET_DESCRIPTOR(device, 0,
// 18). The host orchestrator submits it as its ActiveTransfer.
func (m *Machine) Begin() *transfer.Control {
	setup := usbtype.NewSetupPacket(
		usbtype.DirectionIn, usbtype.RequestKindStandard, usbtype.RecipientDevice,
		usbtype.RequestGetDescriptor, uint16(usbtype.DescriptorTypeDevice)<<8, 0, 18,
	)
	return transfer.New(setup, usbtype.DirectionIn, make([]byte, 18))
}

// HandleControlInData advances the machine when a submitted control
// transfer's DATA stage has completed; data is the received bytes
// (possibly shorter than requested — truncation is tolerated).
func (m *Machine) HandleControlInData(data []byte) Step {
	switch m.Phase {
	case PhaseDeviceDesc:
		return m.handleDeviceDesc(data)
	case PhaseConfigDescLen:
		return m.handleConfigDescLen(data)
	case PhaseConfigDesc:
		return m.handleConfigDesc(data)
	default:
		return Step{}
	}
}

func (m *Machine) handleDeviceDesc(data []byte) Step {
	var dev descriptor.Device
	if err := descriptor.ParseDevice(data, &dev); err != nil {
		m.Phase = PhaseParseError
		return Step{ParseError: true}
	}

	m.numConfigs = int(dev.NumConfigurations)
	m.configIndex = 0
	m.Phase = PhaseConfigDescLen

	submit := m.submitConfigDescLen(0)
	return Step{
		Submit:            submit,
		Descriptors:       []Descriptor{{Type: usbtype.DescriptorTypeDevice, Data: data}},
		Device:            dev,
		NumConfigurations: dev.NumConfigurations,
	}
}

func (m *Machine) handleConfigDescLen(data []byte) Step {
	if err := descriptor.ParseConfiguration(data, &m.configHeader); err != nil {
		m.Phase = PhaseParseError
		return Step{ParseError: true}
	}

	m.Phase = PhaseConfigDesc
	setup := usbtype.NewSetupPacket(
		usbtype.DirectionIn, usbtype.RequestKindStandard, usbtype.RecipientDevice,
		usbtype.RequestGetDescriptor, uint16(usbtype.DescriptorTypeConfiguration)<<8|uint16(m.configIndex), 0,
		m.configHeader.TotalLength,
	)
	buf := make([]byte, m.configHeader.TotalLength)
	return Step{Submit: transfer.New(setup, usbtype.DirectionIn, buf)}
}

func (m *Machine) handleConfigDesc(data []byte) Step {
	descs := walkDescriptors(data)

	m.configIndex++
	if m.configIndex < m.numConfigs {
		m.Phase = PhaseConfigDescLen
		return Step{Submit: m.submitConfigDescLen(m.configIndex), Descriptors: descs}
	}

	m.Phase = PhaseDone
	return Step{Done: true, Descriptors: descs}
}

func (m *Machine) submitConfigDescLen(index int) *transfer.Control {
	setup := usbtype.NewSetupPacket(
		usbtype.DirectionIn, usbtype.RequestKindStandard, usbtype.RecipientDevice,
		usbtype.RequestGetDescriptor, uint16(usbtype.DescriptorTypeConfiguration)<<8|uint16(index), 0,
		descriptor.ConfigurationSize,
	)
	return transfer.New(setup, usbtype.DirectionIn, make([]byte, descriptor.ConfigurationSize))
}

// walkDescriptors decodes every descriptor in a full configuration
// buffer, dispatching the configuration header itself plus every
// interface, endpoint, or class-specific descriptor found, in wire
// order. Truncated or malformed trailing data simply ends the walk
// early, per spec §4.4's "drivers must tolerate truncation."
func walkDescriptors(data []byte) []Descriptor {
	var descs []Descriptor
	rest := data
	for len(rest) > 0 {
		length, descType, _, next, ok := descriptor.Any(rest)
		if !ok {
			break
		}
		end := int(length)
		if end > len(rest) {
			end = len(rest)
		}
		descs = append(descs, Descriptor{Type: descType, Data: append([]byte(nil), rest[:end]...)})
		if length == 0 {
			break
		}
		rest = next
	}
	return descs
}
