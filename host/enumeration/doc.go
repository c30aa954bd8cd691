// Package enumeration implements the two-reset address-assignment
// sequence of spec §4.3: bring a freshly attached device out of reset
// twice, probe its EP0 max packet size with a short device-descriptor
// read, and assign it a host-chosen address.
//
// A Machine never talks to the bus for anything requiring the shared,
// at-most-one-in-flight control transfer itself; instead each Handle*
// method returns a Step describing what the host orchestrator should do
// next, including submitting a new transfer.Control when one is needed.
package enumeration
