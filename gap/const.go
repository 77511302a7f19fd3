package gap

import "fmt"

// DataType is a Bluetooth SIG-assigned advertising data type code.
// The assigned numbers are listed under Generic Access Profile in the
// Bluetooth SIG assigned-numbers document; the structure of each data type
// is defined in the Core Specification Supplement, Part A.
type DataType byte

// Advertising data type codes.
const (
	Flags                DataType = 0x01 // Flags (CSS Part A, 1.3)
	SomeUUID16           DataType = 0x02 // Incomplete List of 16-bit Service Class UUIDs (CSS Part A, 1.1)
	AllUUID16            DataType = 0x03 // Complete List of 16-bit Service Class UUIDs (CSS Part A, 1.1)
	SomeUUID32           DataType = 0x04 // Incomplete List of 32-bit Service Class UUIDs (CSS Part A, 1.1)
	AllUUID32            DataType = 0x05 // Complete List of 32-bit Service Class UUIDs (CSS Part A, 1.1)
	SomeUUID128          DataType = 0x06 // Incomplete List of 128-bit Service Class UUIDs (CSS Part A, 1.1)
	AllUUID128           DataType = 0x07 // Complete List of 128-bit Service Class UUIDs (CSS Part A, 1.1)
	ShortName            DataType = 0x08 // Shortened Local Name (CSS Part A, 1.2)
	CompleteName         DataType = 0x09 // Complete Local Name (CSS Part A, 1.2)
	TxPower              DataType = 0x0A // Tx Power Level (CSS Part A, 1.5)
	ClassOfDevice        DataType = 0x0D // Class of Device (CSS Part A, 1.6)
	SimplePairingC192    DataType = 0x0E // Simple Pairing Hash C-192 (CSS Part A, 1.6)
	SimplePairingR192    DataType = 0x0F // Simple Pairing Randomizer R-192 (CSS Part A, 1.6)
	SecManagerTK         DataType = 0x10 // Device ID / Security Manager TK Value (CSS Part A, 1.8)
	SecManagerOOB        DataType = 0x11 // Security Manager Out of Band Flags (CSS Part A, 1.7)
	SlaveConnInt         DataType = 0x12 // Slave Connection Interval Range (CSS Part A, 1.9)
	ServiceSol16         DataType = 0x14 // List of 16-bit Service Solicitation UUIDs (CSS Part A, 1.10)
	ServiceSol128        DataType = 0x15 // List of 128-bit Service Solicitation UUIDs (CSS Part A, 1.10)
	ServiceData16        DataType = 0x16 // Service Data - 16-bit UUID (CSS Part A, 1.11)
	PubTargetAddr        DataType = 0x17 // Public Target Address (CSS Part A, 1.13)
	RandTargetAddr       DataType = 0x18 // Random Target Address (CSS Part A, 1.14)
	Appearance           DataType = 0x19 // Appearance (CSS Part A, 1.12)
	AdvInterval          DataType = 0x1A // Advertising Interval (CSS Part A, 1.15)
	LEDeviceAddr         DataType = 0x1B // LE Bluetooth Device Address (CSS Part A, 1.16)
	LERole               DataType = 0x1C // LE Role (CSS Part A, 1.17)
	SimplePairingC256    DataType = 0x1D // Simple Pairing Hash C-256 (CSS Part A, 1.6)
	SimplePairingR256    DataType = 0x1E // Simple Pairing Randomizer R-256 (CSS Part A, 1.6)
	ServiceSol32         DataType = 0x1F // List of 32-bit Service Solicitation UUIDs (CSS Part A, 1.10)
	ServiceData32        DataType = 0x20 // Service Data - 32-bit UUID (CSS Part A, 1.11)
	ServiceData128       DataType = 0x21 // Service Data - 128-bit UUID (CSS Part A, 1.11)
	LESecConfirm         DataType = 0x22 // LE Secure Connections Confirmation Value (CSS Part A, 1.6)
	LESecRandom          DataType = 0x23 // LE Secure Connections Random Value (CSS Part A, 1.6)
	URI                  DataType = 0x24 // URI (CSS Part A, 1.18)
	IndoorPositioning    DataType = 0x25 // Indoor Positioning (Indoor Positioning Service v1.0)
	TransportDiscovery   DataType = 0x26 // Transport Discovery Data (Transport Discovery Service v1.0)
	LESupportedFeatures  DataType = 0x27 // LE Supported Features (CSS Part A, 1.19)
	ChannelMapUpdate     DataType = 0x28 // Channel Map Update Indication (CSS Part A, 1.20)
	PBADV                DataType = 0x29 // PB-ADV (Mesh Profile 5.2.1)
	MeshMessage          DataType = 0x2A // Mesh Message (Mesh Profile 3.3.1)
	MeshBeacon           DataType = 0x2B // Mesh Beacon (Mesh Profile 3.9)
	Information3D        DataType = 0x3D // 3D Information Data (3D Synchronization Profile v1.0)
	ManufacturerSpecific DataType = 0xFF // Manufacturer Specific Data (CSS Part A, 1.4)
)

var typeName = map[DataType]string{
	Flags:                "Flags",
	SomeUUID16:           "Incomplete List of 16-bit Service Class UUIDs",
	AllUUID16:            "Complete List of 16-bit Service Class UUIDs",
	SomeUUID32:           "Incomplete List of 32-bit Service Class UUIDs",
	AllUUID32:            "Complete List of 32-bit Service Class UUIDs",
	SomeUUID128:          "Incomplete List of 128-bit Service Class UUIDs",
	AllUUID128:           "Complete List of 128-bit Service Class UUIDs",
	ShortName:            "Shortened Local Name",
	CompleteName:         "Complete Local Name",
	TxPower:              "Tx Power Level",
	ClassOfDevice:        "Class of Device",
	SimplePairingC192:    "Simple Pairing Hash C-192",
	SimplePairingR192:    "Simple Pairing Randomizer R-192",
	SecManagerTK:         "Security Manager TK Value",
	SecManagerOOB:        "Security Manager Out of Band Flags",
	SlaveConnInt:         "Slave Connection Interval Range",
	ServiceSol16:         "List of 16-bit Service Solicitation UUIDs",
	ServiceSol128:        "List of 128-bit Service Solicitation UUIDs",
	ServiceData16:        "Service Data - 16-bit UUID",
	PubTargetAddr:        "Public Target Address",
	RandTargetAddr:       "Random Target Address",
	Appearance:           "Appearance",
	AdvInterval:          "Advertising Interval",
	LEDeviceAddr:         "LE Bluetooth Device Address",
	LERole:               "LE Role",
	SimplePairingC256:    "Simple Pairing Hash C-256",
	SimplePairingR256:    "Simple Pairing Randomizer R-256",
	ServiceSol32:         "List of 32-bit Service Solicitation UUIDs",
	ServiceData32:        "Service Data - 32-bit UUID",
	ServiceData128:       "Service Data - 128-bit UUID",
	LESecConfirm:         "LE Secure Connections Confirmation Value",
	LESecRandom:          "LE Secure Connections Random Value",
	URI:                  "URI",
	IndoorPositioning:    "Indoor Positioning",
	TransportDiscovery:   "Transport Discovery Data",
	LESupportedFeatures:  "LE Supported Features",
	ChannelMapUpdate:     "Channel Map Update Indication",
	PBADV:                "PB-ADV",
	MeshMessage:          "Mesh Message",
	MeshBeacon:           "Mesh Beacon",
	Information3D:        "3D Information Data",
	ManufacturerSpecific: "Manufacturer Specific Data",
}

// String returns the assigned-numbers name of the data type. Unrecognized
// codes are rendered as unknown(0xNN), never rejected.
func (t DataType) String() string {
	if n, ok := typeName[t]; ok {
		return n
	}
	return fmt.Sprintf("unknown(0x%02X)", byte(t))
}
