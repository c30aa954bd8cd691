// Package transfer implements the control-transfer state machine (spec
// §4.2): the three-stage SETUP/DATA/STATUS sequence shared by every
// control request the host issues, advanced one TransComplete event at
// a time.
//
// At most one Control is ever active host-wide; the orchestrator owns
// that invariant; this package only advances whichever one it is given.
package transfer
