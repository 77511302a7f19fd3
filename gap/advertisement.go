package gap

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/blescan/blescan/uuid"
)

// FlagSet is the bitmask carried by the Flags data section.
type FlagSet byte

// Advertising flag bits (CSS Part A, 1.3). Bits beyond these five are
// preserved in the FlagSet but have no assigned name.
const (
	FlagLimitedDiscoverable FlagSet = 0x01 // LE Limited Discoverable Mode
	FlagGeneralDiscoverable FlagSet = 0x02 // LE General Discoverable Mode
	FlagClassicNotSupported FlagSet = 0x04 // BR/EDR Not Supported
	FlagDualModeController  FlagSet = 0x08 // Simultaneous LE and BR/EDR Capable (Controller)
	FlagDualModeHost        FlagSet = 0x10 // Simultaneous LE and BR/EDR Capable (Host)
)

var flagName = []struct {
	bit  FlagSet
	name string
}{
	{FlagLimitedDiscoverable, "LimitedDiscoverable"},
	{FlagGeneralDiscoverable, "GeneralDiscoverable"},
	{FlagClassicNotSupported, "ClassicNotSupported"},
	{FlagDualModeController, "DualModeController"},
	{FlagDualModeHost, "DualModeHost"},
}

// Has reports whether all bits in mask are set.
func (f FlagSet) Has(mask FlagSet) bool {
	return f&mask == mask
}

// String names the known bits; unnamed bits are appended as a hex value.
func (f FlagSet) String() string {
	var names []string
	rest := f
	for _, fn := range flagName {
		if f.Has(fn.bit) {
			names = append(names, fn.name)
			rest &^= fn.bit
		}
	}
	if rest != 0 || len(names) == 0 {
		names = append(names, fmt.Sprintf("0x%02X", byte(rest)))
	}
	return strings.Join(names, "|")
}

// ManufacturerData is one manufacturer-specific data section: the SIG
// company identifier and the vendor payload.
type ManufacturerData struct {
	CompanyID uint16
	Data      []byte
}

// String implements fmt.Stringer.
func (m ManufacturerData) String() string {
	return fmt.Sprintf("ManufacturerData(0x%04x, 0x%x)", m.CompanyID, m.Data)
}

// An Advertisement is the derived, read-only view over a sequence of data
// sections. Singleton fields (Flags, LocalName, Appearance, TxPowerLevel)
// take the first section of their type; later duplicates remain available
// in DataSections only. Services holds the advertised Service Class UUIDs
// from the complete 16-bit and 128-bit lists, expanded to 128-bit
// canonical form; solicitation and incomplete lists are not folded in.
type Advertisement struct {
	DataSections     []DataSection
	Flags            *FlagSet
	LocalName        string
	ManufacturerData []ManufacturerData
	Services         []uuid.UUID
	Appearance       *uint16
	TxPowerLevel     *int8

	// Diagnostics records field-local decode failures, such as a numeric
	// section shorter than its type requires. A failed field is left
	// absent; the rest of the advertisement still decodes.
	Diagnostics []string
}

// DecodeAdvertisement derives the typed view from sections, preserving
// their order. Each section is classified into exactly one bucket;
// sections outside the promoted buckets are retained in DataSections only.
func DecodeAdvertisement(sections []DataSection) *Advertisement {
	a := &Advertisement{DataSections: sections}
	named := false
	for _, s := range sections {
		switch s.Type {
		case Flags:
			if a.Flags != nil {
				continue
			}
			if len(s.Data) < 1 {
				a.diag(s, "empty flags payload")
				continue
			}
			f := FlagSet(s.Data[0])
			a.Flags = &f
		case ShortName, CompleteName:
			if named {
				continue
			}
			named = true
			a.LocalName = string(s.Data)
		case ManufacturerSpecific:
			if len(s.Data) < 2 {
				a.diag(s, "manufacturer data shorter than company ID")
				continue
			}
			a.ManufacturerData = append(a.ManufacturerData, ManufacturerData{
				CompanyID: binary.LittleEndian.Uint16(s.Data[:2]),
				Data:      append([]byte(nil), s.Data[2:]...),
			})
		case Appearance:
			if a.Appearance != nil {
				continue
			}
			if len(s.Data) < 2 {
				a.diag(s, "appearance payload shorter than 2 bytes")
				continue
			}
			v := binary.BigEndian.Uint16(s.Data[:2])
			a.Appearance = &v
		case TxPower:
			if a.TxPowerLevel != nil {
				continue
			}
			if len(s.Data) < 1 {
				a.diag(s, "empty tx power payload")
				continue
			}
			v := int8(s.Data[0])
			a.TxPowerLevel = &v
		case AllUUID16:
			a.appendServices(s, 2)
		case AllUUID128:
			a.appendServices(s, 16)
		}
	}
	return a
}

// appendServices folds a complete service class UUID list into Services,
// converting each entry from little-endian wire order to 128-bit canonical
// form. A trailing partial entry is diagnosed and skipped.
func (a *Advertisement) appendServices(s DataSection, w int) {
	d := s.Data
	for len(d) >= w {
		u := uuid.UUID(uuid.Reverse(d[:w]))
		a.Services = append(a.Services, u.To128())
		d = d[w:]
	}
	if len(d) > 0 {
		a.diag(s, fmt.Sprintf("trailing %d bytes in %d-byte UUID list", len(d), w))
	}
}

func (a *Advertisement) diag(s DataSection, msg string) {
	a.Diagnostics = append(a.Diagnostics, fmt.Sprintf("%s: %s", s.Type, msg))
}

// String implements fmt.Stringer. Sections promoted to typed fields are
// not repeated in the section dump.
func (a *Advertisement) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Advertisement(%q", a.LocalName)
	if a.Appearance != nil {
		fmt.Fprintf(&b, ", appearance=0x%04x", *a.Appearance)
	}
	if a.TxPowerLevel != nil {
		fmt.Fprintf(&b, ", tx_power_level=%d dBm", *a.TxPowerLevel)
	}
	if a.Flags != nil {
		fmt.Fprintf(&b, ", flags=%s", *a.Flags)
	}
	for _, ds := range a.DataSections {
		switch ds.Type {
		case Flags, ShortName, CompleteName, ManufacturerSpecific, Appearance, TxPower, AllUUID16, AllUUID128:
			continue
		}
		fmt.Fprintf(&b, ", %s", ds)
	}
	for _, md := range a.ManufacturerData {
		fmt.Fprintf(&b, ", %s", md)
	}
	if len(a.Services) > 0 {
		ss := make([]string, len(a.Services))
		for i, u := range a.Services {
			ss[i] = u.String()
		}
		fmt.Fprintf(&b, ", services=[%s]", strings.Join(ss, " "))
	}
	b.WriteString(")")
	return b.String()
}
