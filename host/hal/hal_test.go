package hal

import (
	"testing"

	"github.com/ardnew/usbhost/usbtype"
)

func TestEvent_ZeroValueIsAttachedLowSpeed(t *testing.T) {
	// Guards against an accidental reordering of EventKind's iota block:
	// a zero Event must read as EventAttached so a caller that forgets
	// to check ok never misreads a zero Event as some other kind.
	var ev Event
	if ev.Kind != EventAttached {
		t.Errorf("zero Event.Kind = %v, want EventAttached", ev.Kind)
	}
	if ev.Speed != usbtype.SpeedLow {
		t.Errorf("zero Event.Speed = %v, want SpeedLow", ev.Speed)
	}
}

func TestEventKind_Distinct(t *testing.T) {
	kinds := []EventKind{
		EventAttached, EventDetached, EventTransComplete, EventStall,
		EventResume, EventError, EventInterruptPipe, EventSof,
	}
	seen := make(map[EventKind]bool)
	for _, k := range kinds {
		if seen[k] {
			t.Errorf("duplicate EventKind value %d", k)
		}
		seen[k] = true
	}
}

func TestErrorKind_Distinct(t *testing.T) {
	kinds := []ErrorKind{
		ErrorKindCrc, ErrorKindBitStuffing, ErrorKindRxOverflow,
		ErrorKindRxTimeout, ErrorKindDataSequence, ErrorKindOther,
	}
	seen := make(map[ErrorKind]bool)
	for _, k := range kinds {
		if seen[k] {
			t.Errorf("duplicate ErrorKind value %d", k)
		}
		seen[k] = true
	}
}
