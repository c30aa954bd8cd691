// Package discovery implements the post-enumeration descriptor fetch
// (spec §4.4): read the full device descriptor, then every
// configuration descriptor's header-then-body pair, fanning each
// decoded descriptor out to the driver dispatch contract as it arrives.
//
// Like package enumeration, a Machine never submits a control transfer
// itself; each Handle* call returns a Step telling the host orchestrator
// what to submit next and which descriptors to dispatch.
package discovery
