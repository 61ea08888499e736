package mctp

import "fmt"

// MessageType identifies the format of an MCTP message body (DSP0239).
// It occupies 7 bits of the header.
type MessageType uint8

const (
	// MessageTypeControl is used for MCTP control messages.
	MessageTypeControl MessageType = 0x00

	// MessageTypePLDM carries Platform Level Data Model messages.
	MessageTypePLDM MessageType = 0x01

	// MessageTypeNCSI carries NC-SI over MCTP.
	MessageTypeNCSI MessageType = 0x02

	// MessageTypeEthernet carries Ethernet over MCTP.
	MessageTypeEthernet MessageType = 0x03

	// MessageTypeNVMeMI carries NVM Express Management Interface messages.
	MessageTypeNVMeMI MessageType = 0x04

	// MessageTypeSPDM carries Security Protocol and Data Model messages.
	MessageTypeSPDM MessageType = 0x05

	// MessageTypeSecured carries secured messages using SPDM.
	MessageTypeSecured MessageType = 0x06

	// MessageTypeCXLFMAPI carries CXL Fabric Manager API messages.
	MessageTypeCXLFMAPI MessageType = 0x07

	// MessageTypeCXLCCI carries CXL Component Command Interface messages.
	MessageTypeCXLCCI MessageType = 0x08

	// MessageTypeVendorDefinedPCI is vendor defined, keyed by PCI vendor ID.
	MessageTypeVendorDefinedPCI MessageType = 0x7E

	// MessageTypeVendorDefinedIANA is vendor defined, keyed by IANA enterprise number.
	MessageTypeVendorDefinedIANA MessageType = 0x7F
)

// ParseMessageType converts a raw 7-bit code to a MessageType.
func ParseMessageType(raw uint32) (MessageType, bool) {
	if raw > 0xFF {
		return 0, false
	}
	t := MessageType(raw)
	return t, t.IsValid()
}

// IsValid returns true if t is a known message type.
func (t MessageType) IsValid() bool {
	switch t {
	case MessageTypeControl, MessageTypePLDM, MessageTypeNCSI, MessageTypeEthernet,
		MessageTypeNVMeMI, MessageTypeSPDM, MessageTypeSecured, MessageTypeCXLFMAPI,
		MessageTypeCXLCCI, MessageTypeVendorDefinedPCI, MessageTypeVendorDefinedIANA:
		return true
	default:
		return false
	}
}

// Code returns the numeric code of t.
func (t MessageType) Code() (uint32, bool) {
	return uint32(t), t.IsValid()
}

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case MessageTypeControl:
		return "CONTROL"
	case MessageTypePLDM:
		return "PLDM"
	case MessageTypeNCSI:
		return "NCSI"
	case MessageTypeEthernet:
		return "ETHERNET"
	case MessageTypeNVMeMI:
		return "NVME_MI"
	case MessageTypeSPDM:
		return "SPDM"
	case MessageTypeSecured:
		return "SECURED"
	case MessageTypeCXLFMAPI:
		return "CXL_FM_API"
	case MessageTypeCXLCCI:
		return "CXL_CCI"
	case MessageTypeVendorDefinedPCI:
		return "VENDOR_DEFINED_PCI"
	case MessageTypeVendorDefinedIANA:
		return "VENDOR_DEFINED_IANA"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
	}
}
