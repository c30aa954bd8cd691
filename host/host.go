package host

import (
	"github.com/ardnew/usbhost/host/discovery"
	"github.com/ardnew/usbhost/host/driver"
	"github.com/ardnew/usbhost/host/enumeration"
	"github.com/ardnew/usbhost/host/hal"
	"github.com/ardnew/usbhost/host/pipe"
	"github.com/ardnew/usbhost/host/transfer"
	"github.com/ardnew/usbhost/pkg"
	"github.com/ardnew/usbhost/usbtype"
)

// State names one of the five states a Host can be in.
type State uint8

const (
	StateEnumeration State = iota
	StateDiscovery
	StateConfiguring
	StateConfigured
	StateDormant
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateEnumeration:
		return "enumeration"
	case StateDiscovery:
		return "discovery"
	case StateConfiguring:
		return "configuring"
	case StateConfigured:
		return "configured"
	case StateDormant:
		return "dormant"
	default:
		return "unknown"
	}
}

// ResultKind summarizes what a Poll call did.
type ResultKind uint8

const (
	// ResultNoDevice: nothing attached, nothing in flight.
	ResultNoDevice ResultKind = iota
	// ResultBusy: a control transfer is in flight; call Poll again.
	ResultBusy
	// ResultIdle: the bus event queue was drained or empty; nothing in flight.
	ResultIdle
	// ResultStall: the active transfer's endpoint stalled. It is not
	// retried automatically; Result.Address names the device.
	ResultStall
	// ResultBusError: the controller reported a link-level error (Result.Err is valid).
	ResultBusError
	// ResultDiscoveryError: descriptor decoding failed for the addressed
	// device (Result.Address is valid); the device is now Dormant.
	ResultDiscoveryError
)

// Result is returned from every Poll call.
type Result struct {
	Kind    ResultKind
	Err     hal.ErrorKind
	Address usbtype.DeviceAddress
}

// Host is a single-threaded, cooperative USB host bound to one root
// port. The zero value is not usable; construct one with New.
type Host struct {
	bus   hal.Bus
	state State

	enum *enumeration.Machine
	disc *discovery.Machine

	pipes pipe.Table

	active     *transfer.Control
	activePipe pipe.ID

	addr        usbtype.DeviceAddress
	speed       usbtype.Speed
	configValue uint8

	nextAddr usbtype.DeviceAddress
}

// New returns a Host ready to Poll, starting in StateEnumeration with
// no device attached.
func New(bus hal.Bus) *Host {
	h := &Host{bus: bus, activePipe: pipe.InvalidID}
	h.enum = &enumeration.Machine{Allocate: h.allocateAddress}
	return h
}

// State returns the Host's current state.
func (h *Host) State() State { return h.state }

// Address returns the address of the device the Host is currently
// tracking (valid outside StateEnumeration).
func (h *Host) Address() usbtype.DeviceAddress { return h.addr }

// Poll drains at most one hal.Bus event and advances the state
// machine, fanning driver callbacks out to drivers in order (spec
// §4.6). It never blocks.
func (h *Host) Poll(drivers []driver.Driver) Result {
	ev, ok := h.bus.Poll()
	if !ok {
		return h.status()
	}

	// A driver-submitted transfer that ends in a stall or bus error is
	// reported to the drivers through CompletedControl with ok=false.
	if (ev.Kind == hal.EventStall || ev.Kind == hal.EventError) && h.active != nil && h.state == StateConfigured {
		failedPipe := h.activePipe
		h.cancelActive()
		driver.CompletedControlAll(drivers, h.addr, failedPipe, nil, false)
	}

	switch ev.Kind {
	case hal.EventAttached:
		h.handleAttached(ev.Speed)
	case hal.EventDetached:
		h.handleDetached(drivers)
	case hal.EventTransComplete:
		return h.handleTransComplete(drivers)
	case hal.EventStall:
		h.cancelActive()
		return Result{Kind: ResultStall, Address: h.addr}
	case hal.EventError:
		h.cancelActive()
		return Result{Kind: ResultBusError, Err: ev.Err}
	case hal.EventInterruptPipe:
		h.handleInterruptPipe(ev.Ref, drivers)
	case hal.EventSof:
		h.handleSof()
	}
	return h.status()
}

func (h *Host) status() Result {
	if h.active != nil {
		return Result{Kind: ResultBusy}
	}
	if h.state == StateEnumeration && h.enum.Phase == enumeration.PhaseWaitForDevice {
		return Result{Kind: ResultNoDevice}
	}
	return Result{Kind: ResultIdle}
}

func (h *Host) cancelActive() {
	h.active = nil
	h.activePipe = pipe.InvalidID
}

func (h *Host) handleAttached(speed usbtype.Speed) {
	if h.state != StateEnumeration {
		return
	}
	pkg.LogDebug(pkg.ComponentHost, "attached", "speed", speed)
	h.enum.HandleAttached(h.bus, speed)
}

func (h *Host) handleSof() {
	if h.state != StateEnumeration {
		return
	}
	step := h.enum.HandleSof()
	if step.Submit != nil {
		h.beginTransfer(step.Submit, pipe.InvalidID)
	}
}

func (h *Host) handleDetached(drivers []driver.Driver) {
	h.cancelActive()

	if h.state == StateEnumeration {
		step := h.enum.HandleDetached()
		if step.DisableSOFInterrupt {
			h.bus.InterruptOnSOF(false)
		}
		return
	}

	addr := h.addr
	h.pipes.ReleaseDevice(h.bus, addr)
	pkg.LogInfo(pkg.ComponentHost, "device detached", "address", addr)
	driver.Detached(drivers, addr)

	h.state = StateEnumeration
	h.enum = &enumeration.Machine{Allocate: h.allocateAddress}
	h.disc = nil
}

func (h *Host) handleInterruptPipe(ref hal.BusRef, drivers []driver.Driver) {
	if h.state != StateConfigured {
		return
	}
	id := h.pipes.FindByRef(ref)
	if id == pipe.InvalidID {
		return
	}
	p, ok := h.pipes.Get(id)
	if !ok {
		return
	}

	switch p.Direction {
	case usbtype.DirectionIn:
		driver.CompletedInAll(drivers, p.Address, id, p.Buffer)
	case usbtype.DirectionOut:
		driver.CompletedOutAll(drivers, p.Address, id, p.Buffer)
	}
	h.bus.PipeContinue(ref)
}

func (h *Host) handleTransComplete(drivers []driver.Driver) Result {
	if h.active == nil {
		return h.status()
	}

	res := h.active.Advance(h.bus)
	if !res.Done {
		return Result{Kind: ResultBusy}
	}

	buf := h.active.Buf
	completedPipe := h.activePipe
	h.cancelActive()

	switch h.state {
	case StateEnumeration:
		return h.advanceEnumeration(res, drivers)
	case StateDiscovery:
		return h.advanceDiscovery(res, buf, drivers)
	case StateConfiguring:
		driver.ConfiguredAll(drivers, h.addr, h.configValue, h)
		h.state = StateConfigured
		pkg.LogInfo(pkg.ComponentHost, "device configured", "address", h.addr, "value", h.configValue)
	case StateConfigured:
		var data []byte
		if res.Direction == usbtype.DirectionIn {
			data = buf[:res.Length]
		}
		driver.CompletedControlAll(drivers, h.addr, completedPipe, data, true)
	}
	return h.status()
}

func (h *Host) advanceEnumeration(res transfer.Result, drivers []driver.Driver) Result {
	if res.Direction == usbtype.DirectionIn {
		h.enum.HandleControlInData(h.bus)
		return h.status()
	}

	step := h.enum.HandleControlOutComplete()
	if !step.Done {
		return h.status()
	}
	if step.DisableSOFInterrupt {
		h.bus.InterruptOnSOF(false)
	}

	h.addr = step.Address
	h.speed = step.Speed
	pkg.LogInfo(pkg.ComponentHost, "device attached", "address", h.addr, "speed", h.speed)
	driver.Attached(drivers, h.addr, h.speed)

	h.state = StateDiscovery
	h.disc = discovery.New()
	h.beginTransfer(h.disc.Begin(), pipe.InvalidID)
	return Result{Kind: ResultBusy}
}

func (h *Host) advanceDiscovery(res transfer.Result, buf []byte, drivers []driver.Driver) Result {
	if res.Direction != usbtype.DirectionIn {
		return h.status()
	}

	step := h.disc.HandleControlInData(buf[:res.Length])
	for _, d := range step.Descriptors {
		driver.DescriptorAll(drivers, h.addr, d.Type, d.Data)
	}

	if step.ParseError {
		pkg.LogWarn(pkg.ComponentHost, "discovery parse error", "address", h.addr)
		h.state = StateDormant
		return Result{Kind: ResultDiscoveryError, Address: h.addr}
	}

	if step.Done {
		value, _, ok := driver.Configure(drivers, h.addr)
		if !ok {
			pkg.LogWarn(pkg.ComponentHost, "no driver claimed device", "address", h.addr)
			h.state = StateDormant
			return h.status()
		}
		h.configValue = value
		setup := usbtype.NewSetupPacket(
			usbtype.DirectionOut, usbtype.RequestKindStandard, usbtype.RecipientDevice,
			usbtype.RequestSetConfiguration, uint16(value), 0, 0,
		)
		h.state = StateConfiguring
		h.beginTransfer(transfer.New(setup, usbtype.DirectionOut, nil), pipe.InvalidID)
		return Result{Kind: ResultBusy}
	}

	if step.Submit != nil {
		h.beginTransfer(step.Submit, pipe.InvalidID)
		return Result{Kind: ResultBusy}
	}
	return h.status()
}

// beginTransfer makes c the Host's active transfer, addressing the bus
// at the default address (nil) during Enumeration and at the device's
// assigned address otherwise, then submits its SETUP stage.
func (h *Host) beginTransfer(c *transfer.Control, pipeID pipe.ID) {
	var addrPtr *usbtype.DeviceAddress
	if h.state != StateEnumeration {
		addrPtr = &h.addr
	}
	h.bus.SetRecipient(addrPtr, 0, usbtype.TransferControl)
	h.active = c
	h.activePipe = pipeID
	c.Begin(h.bus)
}

// allocateAddress returns the next device address, a monotonic counter
// that wraps from MaxAddress back to 1, never handing out 0.
func (h *Host) allocateAddress() usbtype.DeviceAddress {
	if h.nextAddr >= usbtype.MaxAddress {
		h.nextAddr = 0
	}
	h.nextAddr++
	return h.nextAddr
}

// SubmitControl implements driver.Session. It fails with
// pkg.ErrWouldBlock if a transfer is already active, or
// pkg.ErrInvalidPipe if pipeID doesn't validate against addr.
func (h *Host) SubmitControl(addr usbtype.DeviceAddress, pipeID pipe.ID, setup usbtype.SetupPacket, dir usbtype.Direction, buf []byte) error {
	if h.active != nil {
		return pkg.ErrWouldBlock
	}
	if !h.pipes.ValidateControlPipe(&addr, pipeID) {
		return pkg.ErrInvalidPipe
	}
	h.beginTransfer(transfer.New(setup, dir, buf), pipeID)
	return nil
}

// CreateControlPipe implements driver.Session.
func (h *Host) CreateControlPipe(addr usbtype.DeviceAddress) (pipe.ID, bool) {
	id := h.pipes.CreateControlPipe(addr)
	return id, id != pipe.InvalidID
}

// CreateInterruptPipe implements driver.Session.
func (h *Host) CreateInterruptPipe(addr usbtype.DeviceAddress, endpoint uint8, dir usbtype.Direction, size int, interval uint8) (pipe.ID, bool) {
	id := h.pipes.CreateInterruptPipe(h.bus, addr, endpoint, dir, size, interval)
	return id, id != pipe.InvalidID
}

// ReleaseInterruptPipe implements driver.Session.
func (h *Host) ReleaseInterruptPipe(id pipe.ID) {
	p, ok := h.pipes.Get(id)
	if !ok {
		return
	}
	if p.Kind == pipe.KindInterrupt {
		h.bus.ReleaseInterruptPipe(p.Ref)
	}
	h.pipes.Release(id)
}

var _ driver.Session = (*Host)(nil)
