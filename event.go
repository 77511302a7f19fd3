package blescan

import (
	"fmt"
	"time"

	"github.com/blescan/blescan/gap"
)

// AdvType is the advertisement packet type reported by the platform. The
// values are the platform's wire codes; the names correspond to the PDU
// types of the LE air interface.
type AdvType byte

// Advertisement packet types.
const (
	ConnectableUndirected    AdvType = 0 // ADV_IND
	ConnectableDirected      AdvType = 1 // ADV_DIRECT_IND
	ScannableUndirected      AdvType = 2 // ADV_SCAN_IND
	NonConnectableUndirected AdvType = 3 // ADV_NONCONN_IND
	ScanResponse             AdvType = 4 // SCAN_RSP
)

var advTypeName = map[AdvType]string{
	ConnectableUndirected:    "ConnectableUndirected",
	ConnectableDirected:      "ConnectableDirected",
	ScannableUndirected:      "ScannableUndirected",
	NonConnectableUndirected: "NonConnectableUndirected",
	ScanResponse:             "ScanResponse",
}

// String implements fmt.Stringer. Unrecognized codes are rendered as
// unknown(0xNN), never rejected.
func (t AdvType) String() string {
	if n, ok := advTypeName[t]; ok {
		return n
	}
	return fmt.Sprintf("unknown(0x%02X)", byte(t))
}

// An Event is one decoded advertisement arrival: the decoded GAP payload
// plus the physical-layer metadata delivered with it. Events are immutable
// and never merged across callbacks; a scan response is reported as its
// own Event, not correlated back to the advertisement that solicited it.
type Event struct {
	Advertisement *gap.Advertisement
	Type          AdvType
	Addr          Addr
	RSSI          int16
	Timestamp     time.Time
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("Event(%s, %d dBm, %s, %s, advertisement=%s)",
		e.Addr, e.RSSI, e.Timestamp.Format("15:04:05.000"), e.Type, e.Advertisement)
}

// A Device is a discovered device: its address, the advertised local name
// (possibly empty) and the event that first matched. A Device is created
// on the first sighting of an address and never updated by later
// sightings, including scan responses; callers that need fresh RSSI or
// name must re-scan.
type Device struct {
	Addr  Addr
	Name  string
	Event Event
}

// String implements fmt.Stringer.
func (d Device) String() string {
	name := d.Name
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("%s: %s", d.Addr, name)
}
