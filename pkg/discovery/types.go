package discovery

import (
	"errors"
	"time"
)

// Service type constants.
const (
	// ServiceTypeState is the mDNS service type for hestia-state daemons.
	ServiceTypeState = "_hestia-state._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default hestia-state port.
	DefaultPort = 8920
)

// TXT record key constants.
const (
	TXTKeyInstanceID  = "id"   // Daemon instance ID (UUID)
	TXTKeyVersion     = "ver"  // Daemon version string
	TXTKeyEntityCount = "ent"  // Number of entities in the store
	TXTKeyName        = "name" // Human-readable daemon name (optional)
)

// Timing constants.
const (
	// BrowseTimeout is the default timeout for mDNS browsing.
	BrowseTimeout = 10 * time.Second

	// DefaultTTL is the default DNS record TTL.
	DefaultTTL = 120 * time.Second
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63
)

// Discovery errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
	ErrBrowserStopped      = errors.New("browser is stopped")
)

// ServiceInfo describes a daemon to advertise.
type ServiceInfo struct {
	// InstanceName is the mDNS instance name.
	InstanceName string

	// InstanceID is the daemon's instance ID.
	InstanceID string

	// Version is the daemon's version string.
	Version string

	// EntityCount is the number of entities in the daemon's store.
	EntityCount int

	// Name is an optional human-readable name.
	Name string

	// Port is the daemon's listen port. Zero means DefaultPort.
	Port uint16
}

// Validate checks that the service info has the required fields.
func (s *ServiceInfo) Validate() error {
	if s.InstanceName == "" || s.InstanceID == "" {
		return ErrMissingRequired
	}
	if len(s.InstanceName) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}

// Service represents a daemon found via mDNS browsing.
type Service struct {
	// InstanceName is the mDNS instance name.
	InstanceName string

	// Host is the advertised hostname.
	Host string

	// Port is the advertised port.
	Port uint16

	// Addresses are the resolved IP addresses, as strings.
	Addresses []string

	// InstanceID is the daemon's instance ID from TXT records.
	InstanceID string

	// Version is the daemon's version string from TXT records.
	Version string

	// EntityCount is the entity count from TXT records.
	EntityCount int

	// Name is the optional human-readable name from TXT records.
	Name string
}
