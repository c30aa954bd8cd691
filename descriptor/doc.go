// Package descriptor decodes USB descriptor buffers returned by control
// transfers: device, configuration, interface, and endpoint descriptors,
// plus the generic streaming reader the discovery state machine drives
// over a raw configuration descriptor buffer.
//
// The streaming decoders (Any and DecodeTree) accept a short or
// truncated buffer rather than failing outright: a device that stalls
// mid-transfer or a host that only requested the first few bytes of a
// configuration descriptor still yields whatever descriptors fit,
// instead of an all-or-nothing parse error. The fixed-size decoders
// (ParseDevice, ParseConfiguration, ParseInterface, ParseEndpoint) do
// not: they report pkg.ErrDescriptorTooShort for a buffer shorter than
// the descriptor and pkg.ErrDescriptorTypeMismatch for a wrong type
// byte.
package descriptor
