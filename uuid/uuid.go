// Package uuid implements Bluetooth UUID values: 16-bit SIG-assigned short
// forms and full 128-bit UUIDs, with expansion onto the Bluetooth Base UUID.
package uuid

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// base is the Bluetooth Base UUID, 00000000-0000-1000-8000-00805F9B34FB.
// SIG-assigned 16-bit UUIDs expand onto it. [Vol 3, Part B, 2.5.1]
var base = [16]byte{
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00,
	0x10, 0x00,
	0x80, 0x00,
	0x00, 0x80, 0x5F, 0x9B, 0x34, 0xFB,
}

// A UUID is a Bluetooth UUID in canonical (big-endian) byte order.
// BLE UUIDs are either 2 or 16 bytes.
type UUID []byte

// UUID16 converts a uint16 (such as 0x180A) to a UUID.
func UUID16(i uint16) UUID {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, i)
	return UUID(b)
}

// Parse parses a UUID string, such as "180A", "0x180A" or
// "0000180a-0000-1000-8000-00805f9b34fb".
func Parse(s string) (UUID, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Replace(s, "-", "", -1)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "can't parse uuid %q", s)
	}
	if err := lenErr(len(b)); err != nil {
		return nil, err
	}
	return UUID(b), nil
}

// MustParse parses a UUID string, like Parse, but panics in case of error.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// lenErr returns an error if n is an invalid UUID length.
func lenErr(n int) error {
	switch n {
	case 2, 16:
		return nil
	}
	return errors.Errorf("UUIDs must have length 2 or 16, got %d", n)
}

// Len returns the length of the UUID, in bytes.
func (u UUID) Len() int {
	return len(u)
}

// To128 expands a 16-bit UUID onto the Base UUID. A 128-bit UUID is
// returned unchanged, so expansion is idempotent.
func (u UUID) To128() UUID {
	if len(u) != 2 {
		return u
	}
	b := make([]byte, 16)
	copy(b, base[:])
	b[2], b[3] = u[0], u[1]
	return UUID(b)
}

// String renders the canonical form: the dashed lowercase form for 128-bit
// UUIDs, bare hex for short ones.
func (u UUID) String() string {
	if len(u) == 16 {
		return fmt.Sprintf("%x-%x-%x-%x-%x", []byte(u[0:4]), []byte(u[4:6]), []byte(u[6:8]), []byte(u[8:10]), []byte(u[10:16]))
	}
	return fmt.Sprintf("%x", []byte(u))
}

// Equal returns a boolean reporting whether v represents the same UUID as u.
func (u UUID) Equal(v UUID) bool {
	return bytes.Equal(u, v)
}

// Contains returns a boolean reporting whether u is in the slice s.
func Contains(s []UUID, u UUID) bool {
	for _, a := range s {
		if a.Equal(u) {
			return true
		}
	}
	return false
}

// Reverse returns a reversed copy of u. Advertising payloads carry UUIDs
// in little-endian wire order; Reverse converts to canonical order.
func Reverse(u []byte) []byte {
	l := len(u)
	if l == 2 {
		return []byte{u[1], u[0]}
	}
	b := make([]byte, l)
	for i, c := range u {
		b[l-i-1] = c
	}
	return b
}

// ServiceName returns the SIG name of a known service UUID, or "" if the
// UUID is not a known service. 128-bit UUIDs are recognized only when they
// lie on the Base UUID.
func ServiceName(u UUID) string {
	if len(u) == 16 {
		v := append([]byte(nil), u...)
		v[2], v[3] = 0, 0
		if !bytes.Equal(v, base[:]) {
			return ""
		}
		u = UUID{u[2], u[3]}
	}
	if len(u) != 2 {
		return ""
	}
	return knownService[fmt.Sprintf("%x", []byte(u))]
}

// A dictionary of known SIG service names (keyed by 16-bit service uuid).
var knownService = map[string]string{
	"1800": "Generic Access",
	"1801": "Generic Attribute",
	"1802": "Immediate Alert",
	"1803": "Link Loss",
	"1804": "Tx Power",
	"1805": "Current Time Service",
	"1806": "Reference Time Update Service",
	"1807": "Next DST Change Service",
	"1808": "Glucose",
	"1809": "Health Thermometer",
	"180a": "Device Information",
	"180d": "Heart Rate",
	"180e": "Phone Alert Status Service",
	"180f": "Battery Service",
	"1810": "Blood Pressure",
	"1811": "Alert Notification Service",
	"1812": "Human Interface Device",
	"1813": "Scan Parameters",
	"1814": "Running Speed and Cadence",
	"1815": "Cycling Speed and Cadence",
}
