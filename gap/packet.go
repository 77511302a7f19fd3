// Package gap decodes Generic Access Profile advertising data: the raw
// length/type/value sections of an advertisement payload and the typed
// Advertisement view derived from them.
// Refer to Supplement to Bluetooth Core Specification, Part A.
package gap

import "fmt"

// A DataSection is one advertising data structure: a type code and its
// payload. The payload is an owned copy of the platform bytes; a section
// is immutable once constructed.
type DataSection struct {
	Type DataType
	Data []byte
}

// String implements fmt.Stringer.
func (s DataSection) String() string {
	return fmt.Sprintf("DataSection(%s, 0x%x)", s.Type, s.Data)
}

// DecodeSections parses raw advertising data into its data sections.
// Each section starts with a length byte covering the type byte and the
// payload, followed by the type byte and the payload itself. A truncated
// or zero-length section ends parsing; sections decoded up to that point
// are returned. Unknown type codes are preserved verbatim.
func DecodeSections(b []byte) []DataSection {
	var ss []DataSection
	for len(b) > 0 {
		if len(b) < 2 {
			return ss
		}
		l, t := b[0], b[1]
		if l == 0 || len(b) < int(1+l) {
			return ss
		}
		d := make([]byte, l-1)
		copy(d, b[2:1+l])
		ss = append(ss, DataSection{Type: DataType(t), Data: d})
		b = b[1+l:]
	}
	return ss
}
