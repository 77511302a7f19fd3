package blescan

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// An Addr is a device MAC address in canonical form: uppercase hex pairs
// separated by colons, "FA:BD:60:D2:11:3A". Addrs are produced once at the
// platform boundary so the rest of the pipeline never deals with backend
// address shapes.
type Addr string

// ParseAddr normalizes s into a canonical Addr. Separator characters are
// ignored; what remains must be exactly 12 hex digits or ParseAddr fails
// with ErrInvalidAddr.
func ParseAddr(s string) (Addr, error) {
	up := strings.ToUpper(s)
	digits := make([]byte, 0, 12)
	for i := 0; i < len(up); i++ {
		c := up[i]
		if c >= '0' && c <= '9' || c >= 'A' && c <= 'F' {
			digits = append(digits, c)
		}
	}
	if len(digits) != 12 {
		return "", errors.Wrapf(ErrInvalidAddr, "address %q", s)
	}
	return canonical(digits), nil
}

// MustParseAddr parses an address, like ParseAddr, but panics on error.
func MustParseAddr(s string) Addr {
	a, err := ParseAddr(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddrFromUint converts the platform's 48-bit integer address form.
func AddrFromUint(u uint64) Addr {
	return canonical([]byte(fmt.Sprintf("%012X", u&0xFFFFFFFFFFFF)))
}

// canonical joins 12 hex digits into colon-separated pairs.
func canonical(digits []byte) Addr {
	pairs := make([]string, 6)
	for i := range pairs {
		pairs[i] = string(digits[2*i : 2*i+2])
	}
	return Addr(strings.Join(pairs, ":"))
}

// Uint returns the address in the platform's 48-bit integer form.
func (a Addr) Uint() uint64 {
	var u uint64
	for i := 0; i < len(a); i++ {
		c := a[i]
		switch {
		case c >= '0' && c <= '9':
			u = u<<4 | uint64(c-'0')
		case c >= 'A' && c <= 'F':
			u = u<<4 | uint64(c-'A'+10)
		}
	}
	return u
}

// String implements fmt.Stringer.
func (a Addr) String() string {
	return string(a)
}
