package mctp

import "fmt"

// CommandCode identifies an MCTP control command (DSP0236 Table 12).
type CommandCode uint8

const (
	CommandCodeReserved                       CommandCode = 0x00
	CommandCodeSetEndpointID                  CommandCode = 0x01
	CommandCodeGetEndpointID                  CommandCode = 0x02
	CommandCodeGetEndpointUUID                CommandCode = 0x03
	CommandCodeGetVersionSupport              CommandCode = 0x04
	CommandCodeGetMessageTypeSupport          CommandCode = 0x05
	CommandCodeGetVendorDefinedMessageSupport CommandCode = 0x06
	CommandCodeResolveEndpointID              CommandCode = 0x07
	CommandCodeAllocateEndpointIDs            CommandCode = 0x08
	CommandCodeRoutingInformationUpdate       CommandCode = 0x09
	CommandCodeGetRoutingTableEntries         CommandCode = 0x0A
	CommandCodePrepareForEndpointDiscovery    CommandCode = 0x0B
	CommandCodeEndpointDiscovery              CommandCode = 0x0C
	CommandCodeDiscoveryNotify                CommandCode = 0x0D
	CommandCodeGetNetworkID                   CommandCode = 0x0E
	CommandCodeQueryHop                       CommandCode = 0x0F
	CommandCodeResolveUUID                    CommandCode = 0x10
	CommandCodeQueryRateLimit                 CommandCode = 0x11
	CommandCodeRequestTxRateLimit             CommandCode = 0x12
	CommandCodeUpdateRateLimit                CommandCode = 0x13
	CommandCodeQuerySupportedInterfaces       CommandCode = 0x14
)

// commandCodeNames is indexed by command code.
var commandCodeNames = [...]string{
	CommandCodeReserved:                       "RESERVED",
	CommandCodeSetEndpointID:                  "SET_ENDPOINT_ID",
	CommandCodeGetEndpointID:                  "GET_ENDPOINT_ID",
	CommandCodeGetEndpointUUID:                "GET_ENDPOINT_UUID",
	CommandCodeGetVersionSupport:              "GET_VERSION_SUPPORT",
	CommandCodeGetMessageTypeSupport:          "GET_MESSAGE_TYPE_SUPPORT",
	CommandCodeGetVendorDefinedMessageSupport: "GET_VENDOR_DEFINED_MESSAGE_SUPPORT",
	CommandCodeResolveEndpointID:              "RESOLVE_ENDPOINT_ID",
	CommandCodeAllocateEndpointIDs:            "ALLOCATE_ENDPOINT_IDS",
	CommandCodeRoutingInformationUpdate:       "ROUTING_INFORMATION_UPDATE",
	CommandCodeGetRoutingTableEntries:         "GET_ROUTING_TABLE_ENTRIES",
	CommandCodePrepareForEndpointDiscovery:    "PREPARE_FOR_ENDPOINT_DISCOVERY",
	CommandCodeEndpointDiscovery:              "ENDPOINT_DISCOVERY",
	CommandCodeDiscoveryNotify:                "DISCOVERY_NOTIFY",
	CommandCodeGetNetworkID:                   "GET_NETWORK_ID",
	CommandCodeQueryHop:                       "QUERY_HOP",
	CommandCodeResolveUUID:                    "RESOLVE_UUID",
	CommandCodeQueryRateLimit:                 "QUERY_RATE_LIMIT",
	CommandCodeRequestTxRateLimit:             "REQUEST_TX_RATE_LIMIT",
	CommandCodeUpdateRateLimit:                "UPDATE_RATE_LIMIT",
	CommandCodeQuerySupportedInterfaces:       "QUERY_SUPPORTED_INTERFACES",
}

// ParseCommandCode converts a raw 8-bit code to a CommandCode.
func ParseCommandCode(raw uint32) (CommandCode, bool) {
	if raw > 0xFF {
		return 0, false
	}
	c := CommandCode(raw)
	return c, c.IsValid()
}

// IsValid returns true if c is a defined command code.
func (c CommandCode) IsValid() bool {
	return int(c) < len(commandCodeNames)
}

// Code returns the numeric code of c.
func (c CommandCode) Code() (uint32, bool) {
	return uint32(c), c.IsValid()
}

// String returns the command name.
func (c CommandCode) String() string {
	if c.IsValid() {
		return commandCodeNames[c]
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(c))
}
