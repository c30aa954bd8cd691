package descriptor

import "github.com/ardnew/usbhost/usbtype"

// MaxInterfaces and MaxEndpoints bound the configuration-tree walk's fixed
// storage; a configuration reporting more than this many is truncated, not
// rejected, consistent with the rest of this package's truncation-tolerant
// posture.
const (
	MaxInterfaces = 8
	MaxEndpoints  = 16
)

// Any reads one descriptor framed as length(1) type(1) body(length-2) from
// the front of data. It reports the descriptor's length and type byte, the
// body slice (length-2 bytes, possibly truncated if data is shorter than
// length claims), the remaining unconsumed data, and whether a descriptor
// was read at all.
//
// Any never fails on a short body — a configuration descriptor cut off
// mid-transfer still yields a body slice sized to what's available. It
// reports ok=false only when data itself is too short to hold a length/type
// prefix, or when length < 2 (a malformed framing no buffer size can fix).
func Any(data []byte) (length, descType uint8, body, rest []byte, ok bool) {
	if len(data) < 2 {
		return 0, 0, nil, data, false
	}
	length = data[0]
	descType = data[1]
	if length < 2 {
		return length, descType, nil, data, false
	}
	end := int(length)
	if end > len(data) {
		end = len(data)
	}
	body = data[2:end]
	rest = data[end:]
	return length, descType, body, rest, true
}

// Tree is the decoded result of walking a configuration descriptor buffer:
// the configuration header plus every interface and endpoint descriptor
// found in it, in the order they were encountered. Class-specific
// descriptors interleaved between interface/endpoint descriptors are
// skipped; drivers that need them re-walk the raw buffer themselves.
type Tree struct {
	Configuration Configuration
	Interfaces    [MaxInterfaces]Interface
	NumInterfaces int
	Endpoints     [MaxEndpoints]Endpoint
	NumEndpoints  int
}

// DecodeTree walks data — a buffer beginning with a configuration
// descriptor — decoding the configuration header and every nested
// interface and endpoint descriptor into tree. It stops at the first
// malformed framing (length < 2, per Any), at the end of data, or once
// Configuration.TotalLength bytes have been consumed, whichever comes
// first; a short read against TotalLength is not an error, matching the
// zero-length and truncated-transfer handling spec'd for discovery.
//
// DecodeTree reports an error only if the leading configuration descriptor
// itself fails to parse.
func DecodeTree(data []byte, tree *Tree) error {
	if err := ParseConfiguration(data, &tree.Configuration); err != nil {
		return err
	}

	limit := len(data)
	if want := int(tree.Configuration.TotalLength); want < limit {
		limit = want
	}

	rest := data[ConfigurationSize:]
	consumed := ConfigurationSize
	for consumed < limit && len(rest) > 0 {
		length, descType, body, next, ok := Any(rest)
		if !ok {
			break
		}

		switch descType {
		case usbtype.DescriptorTypeInterface:
			if tree.NumInterfaces < MaxInterfaces {
				var iface Interface
				if ParseInterface(rest, &iface) == nil {
					tree.Interfaces[tree.NumInterfaces] = iface
					tree.NumInterfaces++
				}
			}
		case usbtype.DescriptorTypeEndpoint:
			if tree.NumEndpoints < MaxEndpoints {
				var ep Endpoint
				if ParseEndpoint(rest, &ep) == nil {
					tree.Endpoints[tree.NumEndpoints] = ep
					tree.NumEndpoints++
				}
			}
		default:
			_ = body // class-specific descriptor, not retained
		}

		consumed += int(length)
		rest = next
	}

	return nil
}
