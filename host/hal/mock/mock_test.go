package mock

import (
	"testing"

	"github.com/ardnew/usbhost/host/hal"
	"github.com/ardnew/usbhost/usbtype"
)

func TestBus_PushPollFIFOOrder(t *testing.T) {
	b := New()
	b.PushAttached(usbtype.SpeedFull)
	b.PushSof()
	b.PushDetached()

	wantKinds := []hal.EventKind{hal.EventAttached, hal.EventSof, hal.EventDetached}
	for i, want := range wantKinds {
		ev, ok := b.Poll()
		if !ok {
			t.Fatalf("event %d: Poll returned ok=false", i)
		}
		if ev.Kind != want {
			t.Errorf("event %d: Kind = %v, want %v", i, ev.Kind, want)
		}
	}
	if _, ok := b.Poll(); ok {
		t.Error("Poll should return ok=false once drained")
	}
}

func TestBus_PollAtMostOneEventPerCall(t *testing.T) {
	b := New()
	b.PushSof()
	b.PushSof()

	_, ok := b.Poll()
	if !ok {
		t.Fatal("expected an event")
	}
	// Exactly one should have been consumed; a second is still queued.
	_, ok = b.Poll()
	if !ok {
		t.Fatal("expected a second queued event")
	}
	if _, ok := b.Poll(); ok {
		t.Error("queue should be empty after draining both")
	}
}

func TestBus_SetRecipientAndWriteSetup(t *testing.T) {
	b := New()
	addr := usbtype.DeviceAddress(5)
	b.SetRecipient(&addr, 0, usbtype.TransferControl)

	setup := usbtype.NewSetupPacket(usbtype.DirectionIn, usbtype.RequestKindStandard, usbtype.RecipientDevice, usbtype.RequestGetDescriptor, 0x0100, 0, 8)
	b.WriteSetup(setup)

	if got := b.LastSetup(); got != setup {
		t.Errorf("LastSetup() = %+v, want %+v", got, setup)
	}
}

func TestBus_ReceivedDataTruncatesToLength(t *testing.T) {
	b := New()
	b.SetReceivedData([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	buf := make([]byte, 4)
	n := b.ReceivedData(4, buf)
	if n != 4 {
		t.Fatalf("ReceivedData returned %d, want 4", n)
	}
	for i, want := range []byte{1, 2, 3, 4} {
		if buf[i] != want {
			t.Errorf("buf[%d] = %d, want %d", i, buf[i], want)
		}
	}
}

func TestBus_InterruptPipeLifecycle(t *testing.T) {
	b := New()
	buf, ref, ok := b.CreateInterruptPipe(1, 0x81, usbtype.DirectionIn, 8, 10)
	if !ok {
		t.Fatal("CreateInterruptPipe returned ok=false")
	}
	if len(buf) != 8 {
		t.Fatalf("buffer length = %d, want 8", len(buf))
	}
	if got := b.PipeBuffer(ref); len(got) != 8 {
		t.Errorf("PipeBuffer returned len %d, want 8", len(got))
	}

	b.ReleaseInterruptPipe(ref)
	if got := b.PipeBuffer(ref); got != nil {
		t.Error("PipeBuffer should return nil after release")
	}
}

func TestBus_InterruptPipeCapacity(t *testing.T) {
	b := New()
	for i := 0; i < maxInterruptPipes; i++ {
		if _, _, ok := b.CreateInterruptPipe(1, uint8(i), usbtype.DirectionIn, 8, 10); !ok {
			t.Fatalf("CreateInterruptPipe %d unexpectedly failed", i)
		}
	}
	if _, _, ok := b.CreateInterruptPipe(1, 99, usbtype.DirectionIn, 8, 10); ok {
		t.Error("CreateInterruptPipe should fail once all slots are used")
	}
}

func TestBus_ResetCounters(t *testing.T) {
	b := New()
	b.ResetController()
	b.ResetBus()
	b.ResetBus()
	if b.ResetControllerCount() != 1 {
		t.Errorf("ResetControllerCount() = %d, want 1", b.ResetControllerCount())
	}
	if b.ResetBusCount() != 2 {
		t.Errorf("ResetBusCount() = %d, want 2", b.ResetBusCount())
	}
}

var _ hal.Bus = (*Bus)(nil)
