// package musicmanager speaks the binary upload protocol: client
// registration, batch track metadata, and upload session negotiation.
package musicmanager

import (
	"fmt"
	"net"
	"os"

	"github.com/google/uuid"
)

// ClientIdentity identifies this uploader to the server. Both values seed
// every outgoing message template.
type ClientIdentity struct {
	// Address is the hardware address as lower-case hex octets joined by
	// colons, e.g. "aa:bb:cc:dd:ee:ff".
	Address string

	// Hostname is the local machine name.
	Hostname string
}

// NewClientIdentity discovers the local identity. The first interface with a
// hardware address wins; machines without one get a random synthetic address
// so that the identity is still unique per process.
func NewClientIdentity() (ClientIdentity, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return ClientIdentity{}, fmt.Errorf("failed to discover hostname: %w", err)
	}

	addr := discoverAddress()
	if addr == "" {
		addr = syntheticAddress()
	}

	return ClientIdentity{Address: addr, Hostname: hostname}, nil
}

func discoverAddress() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if len(iface.HardwareAddr) >= 6 && iface.Flags&net.FlagLoopback == 0 {
			return FormatAddress(iface.HardwareAddr[:6])
		}
	}
	return ""
}

func syntheticAddress() string {
	id := uuid.New()
	return FormatAddress(id[:6])
}

// FormatAddress normalizes 6 octets to the wire form "aa:bb:cc:dd:ee:ff".
func FormatAddress(octets []byte) string {
	return net.HardwareAddr(octets).String()
}
