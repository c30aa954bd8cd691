package pipe

import (
	"testing"

	"github.com/ardnew/usbhost/host/hal/mock"
	"github.com/ardnew/usbhost/usbtype"
)

func TestTable_CreateControlPipe(t *testing.T) {
	var tbl Table
	id := tbl.CreateControlPipe(1)
	if id == InvalidID {
		t.Fatal("CreateControlPipe returned InvalidID")
	}
	p, ok := tbl.Get(id)
	if !ok {
		t.Fatal("Get returned ok=false for a just-created pipe")
	}
	if p.Kind != KindControl || p.Address != 1 {
		t.Errorf("pipe = %+v, want control pipe for address 1", p)
	}
}

func TestTable_CreateControlPipeFull(t *testing.T) {
	var tbl Table
	for i := 0; i < Capacity; i++ {
		if tbl.CreateControlPipe(usbtype.DeviceAddress(1)) == InvalidID {
			t.Fatalf("slot %d: unexpected InvalidID", i)
		}
	}
	if tbl.CreateControlPipe(1) != InvalidID {
		t.Error("expected InvalidID once table is full")
	}
}

func TestTable_CreateInterruptPipe(t *testing.T) {
	var tbl Table
	bus := mock.New()
	id := tbl.CreateInterruptPipe(bus, 1, 0x81, usbtype.DirectionIn, 8, 10)
	if id == InvalidID {
		t.Fatal("CreateInterruptPipe returned InvalidID")
	}
	p, _ := tbl.Get(id)
	if p.Kind != KindInterrupt || len(p.Buffer) != 8 {
		t.Errorf("pipe = %+v, want interrupt pipe with 8-byte buffer", p)
	}
}

func TestTable_CreateInterruptPipeReleasesBusSlotWhenTableFull(t *testing.T) {
	var tbl Table
	bus := mock.New()
	for i := 0; i < Capacity; i++ {
		tbl.CreateControlPipe(1)
	}
	id := tbl.CreateInterruptPipe(bus, 1, 0x81, usbtype.DirectionIn, 8, 10)
	if id != InvalidID {
		t.Fatal("expected InvalidID once the table is full")
	}
	// The bus-side slot must have been released, not leaked: the mock
	// bus hands out BusRef 0 to its first allocation, and PipeBuffer
	// reports nil for a ref whose slot has been released.
	if buf := bus.PipeBuffer(0); buf != nil {
		t.Error("bus-side interrupt pipe slot appears to have leaked")
	}
}

func TestTable_Release(t *testing.T) {
	var tbl Table
	id := tbl.CreateControlPipe(1)
	tbl.Release(id)
	if _, ok := tbl.Get(id); ok {
		t.Error("Get should report ok=false after Release")
	}
}

func TestTable_FindByRef(t *testing.T) {
	var tbl Table
	bus := mock.New()
	id := tbl.CreateInterruptPipe(bus, 1, 0x81, usbtype.DirectionIn, 8, 10)
	p, _ := tbl.Get(id)
	if got := tbl.FindByRef(p.Ref); got != id {
		t.Errorf("FindByRef = %d, want %d", got, id)
	}
	if got := tbl.FindByRef(p.Ref + 1000); got != InvalidID {
		t.Errorf("FindByRef for unknown ref = %d, want InvalidID", got)
	}
}

func TestTable_ValidateControlPipe(t *testing.T) {
	var tbl Table
	addr1 := usbtype.DeviceAddress(1)
	addr2 := usbtype.DeviceAddress(2)
	id := tbl.CreateControlPipe(addr1)

	tests := []struct {
		name string
		addr *usbtype.DeviceAddress
		id   ID
		want bool
	}{
		{"nil addr, no pipe: valid", nil, InvalidID, true},
		{"addr, no pipe: valid", &addr1, InvalidID, true},
		{"nil addr, pipe: invalid", nil, id, false},
		{"matching addr and pipe: valid", &addr1, id, true},
		{"mismatched addr: invalid", &addr2, id, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.ValidateControlPipe(tt.addr, tt.id); got != tt.want {
				t.Errorf("ValidateControlPipe(%v, %v) = %v, want %v", tt.addr, tt.id, got, tt.want)
			}
		})
	}
}

func TestTable_ReleaseDevice(t *testing.T) {
	var tbl Table
	bus := mock.New()
	c1 := tbl.CreateControlPipe(1)
	i1 := tbl.CreateInterruptPipe(bus, 1, 0x81, usbtype.DirectionIn, 8, 10)
	c2 := tbl.CreateControlPipe(2)

	if !tbl.ReleaseDevice(bus, 1) {
		t.Fatal("ReleaseDevice reported no matching slots")
	}
	if _, ok := tbl.Get(c1); ok {
		t.Error("control pipe for address 1 should be released")
	}
	if _, ok := tbl.Get(i1); ok {
		t.Error("interrupt pipe for address 1 should be released")
	}
	if _, ok := tbl.Get(c2); !ok {
		t.Error("control pipe for address 2 should be untouched")
	}
}

func TestTable_ReleaseDeviceNoMatch(t *testing.T) {
	var tbl Table
	bus := mock.New()
	tbl.CreateControlPipe(1)
	if tbl.ReleaseDevice(bus, 99) {
		t.Error("ReleaseDevice should report false when no slot matches")
	}
}
