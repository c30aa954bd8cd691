package descriptor

import (
	"encoding/binary"

	"github.com/ardnew/usbhost/pkg"
	"github.com/ardnew/usbhost/usbtype"
)

// Device represents a USB device descriptor (18 bytes).
type Device struct {
	Length            uint8
	DescriptorType    uint8
	USBVersion        usbtype.Bcd16
	DeviceClass       uint8
	DeviceSubClass    uint8
	DeviceProtocol    uint8
	MaxPacketSize0    uint8
	VendorID          uint16
	ProductID         uint16
	DeviceVersion     usbtype.Bcd16
	ManufacturerIndex uint8
	ProductIndex      uint8
	SerialNumberIndex uint8
	NumConfigurations uint8
}

// DeviceSize is the size of a device descriptor in bytes.
const DeviceSize = 18

// MarshalTo serializes d to buf. Returns the number of bytes written (18),
// or 0 if buf is too small.
func (d *Device) MarshalTo(buf []byte) int {
	if len(buf) < DeviceSize {
		return 0
	}
	buf[0] = DeviceSize
	buf[1] = usbtype.DescriptorTypeDevice
	binary.LittleEndian.PutUint16(buf[2:4], uint16(d.USBVersion))
	buf[4] = d.DeviceClass
	buf[5] = d.DeviceSubClass
	buf[6] = d.DeviceProtocol
	buf[7] = d.MaxPacketSize0
	binary.LittleEndian.PutUint16(buf[8:10], d.VendorID)
	binary.LittleEndian.PutUint16(buf[10:12], d.ProductID)
	binary.LittleEndian.PutUint16(buf[12:14], uint16(d.DeviceVersion))
	buf[14] = d.ManufacturerIndex
	buf[15] = d.ProductIndex
	buf[16] = d.SerialNumberIndex
	buf[17] = d.NumConfigurations
	return DeviceSize
}

// ParseDevice decodes data into out. Reports pkg.ErrDescriptorTooShort if
// data is shorter than DeviceSize, or pkg.ErrDescriptorTypeMismatch if the
// type byte isn't Device.
func ParseDevice(data []byte, out *Device) error {
	if len(data) < DeviceSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != usbtype.DescriptorTypeDevice {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.USBVersion = usbtype.Bcd16(binary.LittleEndian.Uint16(data[2:4]))
	out.DeviceClass = data[4]
	out.DeviceSubClass = data[5]
	out.DeviceProtocol = data[6]
	out.MaxPacketSize0 = data[7]
	out.VendorID = binary.LittleEndian.Uint16(data[8:10])
	out.ProductID = binary.LittleEndian.Uint16(data[10:12])
	out.DeviceVersion = usbtype.Bcd16(binary.LittleEndian.Uint16(data[12:14]))
	out.ManufacturerIndex = data[14]
	out.ProductIndex = data[15]
	out.SerialNumberIndex = data[16]
	out.NumConfigurations = data[17]
	return nil
}

// Configuration represents a USB configuration descriptor (9 bytes).
type Configuration struct {
	Length             uint8
	DescriptorType     uint8
	TotalLength        uint16
	NumInterfaces      uint8
	ConfigurationValue uint8
	ConfigurationIndex uint8
	Attributes         uint8
	MaxPower           uint8
}

// ConfigurationSize is the size of a configuration descriptor in bytes.
const ConfigurationSize = 9

// MarshalTo serializes c to buf. Returns the number of bytes written (9),
// or 0 if buf is too small.
func (c *Configuration) MarshalTo(buf []byte) int {
	if len(buf) < ConfigurationSize {
		return 0
	}
	buf[0] = ConfigurationSize
	buf[1] = usbtype.DescriptorTypeConfiguration
	binary.LittleEndian.PutUint16(buf[2:4], c.TotalLength)
	buf[4] = c.NumInterfaces
	buf[5] = c.ConfigurationValue
	buf[6] = c.ConfigurationIndex
	buf[7] = c.Attributes
	buf[8] = c.MaxPower
	return ConfigurationSize
}

// ParseConfiguration decodes data into out.
func ParseConfiguration(data []byte, out *Configuration) error {
	if len(data) < ConfigurationSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != usbtype.DescriptorTypeConfiguration {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.TotalLength = binary.LittleEndian.Uint16(data[2:4])
	out.NumInterfaces = data[4]
	out.ConfigurationValue = data[5]
	out.ConfigurationIndex = data[6]
	out.Attributes = data[7]
	out.MaxPower = data[8]
	return nil
}

// Interface represents a USB interface descriptor (9 bytes).
type Interface struct {
	Length            uint8
	DescriptorType    uint8
	InterfaceNumber   uint8
	AlternateSetting  uint8
	NumEndpoints      uint8
	InterfaceClass    uint8
	InterfaceSubClass uint8
	InterfaceProtocol uint8
	InterfaceIndex    uint8
}

// InterfaceSize is the size of an interface descriptor in bytes.
const InterfaceSize = 9

// MarshalTo serializes i to buf. Returns the number of bytes written (9),
// or 0 if buf is too small.
func (i *Interface) MarshalTo(buf []byte) int {
	if len(buf) < InterfaceSize {
		return 0
	}
	buf[0] = InterfaceSize
	buf[1] = usbtype.DescriptorTypeInterface
	buf[2] = i.InterfaceNumber
	buf[3] = i.AlternateSetting
	buf[4] = i.NumEndpoints
	buf[5] = i.InterfaceClass
	buf[6] = i.InterfaceSubClass
	buf[7] = i.InterfaceProtocol
	buf[8] = i.InterfaceIndex
	return InterfaceSize
}

// ParseInterface decodes data into out.
func ParseInterface(data []byte, out *Interface) error {
	if len(data) < InterfaceSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != usbtype.DescriptorTypeInterface {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.InterfaceNumber = data[2]
	out.AlternateSetting = data[3]
	out.NumEndpoints = data[4]
	out.InterfaceClass = data[5]
	out.InterfaceSubClass = data[6]
	out.InterfaceProtocol = data[7]
	out.InterfaceIndex = data[8]
	return nil
}

// Endpoint represents a USB endpoint descriptor (7 bytes).
type Endpoint struct {
	Length          uint8
	DescriptorType  uint8
	EndpointAddress uint8
	Attributes      uint8
	MaxPacketSize   uint16
	Interval        uint8
}

// EndpointSize is the size of an endpoint descriptor in bytes.
const EndpointSize = 7

// MarshalTo serializes e to buf. Returns the number of bytes written (7),
// or 0 if buf is too small.
func (e *Endpoint) MarshalTo(buf []byte) int {
	if len(buf) < EndpointSize {
		return 0
	}
	buf[0] = EndpointSize
	buf[1] = usbtype.DescriptorTypeEndpoint
	buf[2] = e.EndpointAddress
	buf[3] = e.Attributes
	binary.LittleEndian.PutUint16(buf[4:6], e.MaxPacketSize)
	buf[6] = e.Interval
	return EndpointSize
}

// ParseEndpoint decodes data into out.
func ParseEndpoint(data []byte, out *Endpoint) error {
	if len(data) < EndpointSize {
		return pkg.ErrDescriptorTooShort
	}
	if data[1] != usbtype.DescriptorTypeEndpoint {
		return pkg.ErrDescriptorTypeMismatch
	}
	out.Length = data[0]
	out.DescriptorType = data[1]
	out.EndpointAddress = data[2]
	out.Attributes = data[3]
	out.MaxPacketSize = binary.LittleEndian.Uint16(data[4:6])
	out.Interval = data[6]
	return nil
}

// Direction returns the direction encoded in EndpointAddress bit 7.
func (e *Endpoint) Direction() usbtype.Direction {
	if e.EndpointAddress&0x80 != 0 {
		return usbtype.DirectionIn
	}
	return usbtype.DirectionOut
}

// Number returns the endpoint number, EndpointAddress bits 3:0.
func (e *Endpoint) Number() uint8 {
	return e.EndpointAddress & 0x0F
}

// TransferType returns the transfer type encoded in Attributes bits 1:0.
func (e *Endpoint) TransferType() usbtype.TransferType {
	return usbtype.TransferType(e.Attributes & 0x03)
}
