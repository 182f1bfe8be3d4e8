package discovery

import (
	"context"
	"time"
)

// Advertiser provides mDNS service advertising capabilities.
type Advertiser interface {
	// Advertise starts advertising the state daemon service.
	// Calling Advertise while already advertising replaces the
	// current advertisement.
	Advertise(ctx context.Context, info *ServiceInfo) error

	// Update updates the TXT records of the current advertisement.
	Update(info *ServiceInfo) error

	// Stop stops advertising.
	Stop() error
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       DefaultTTL,
	}
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout is the default timeout for browse operations.
	// Default: 10 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
		Interface:     "",
	}
}

// Browser provides mDNS service browsing capabilities.
type Browser interface {
	// Browse searches for state daemons on the network.
	// The channel is closed when the context is cancelled.
	Browse(ctx context.Context) (<-chan *Service, error)

	// FindByInstanceID searches for a specific daemon.
	// Returns when found or when the context is cancelled.
	FindByInstanceID(ctx context.Context, instanceID string) (*Service, error)

	// Stop stops all active browsing operations.
	Stop()
}

// ServiceEntry holds raw mDNS service entry data.
// This is a helper for Browser implementations.
type ServiceEntry struct {
	Instance string
	Service  string
	Domain   string
	Host     string
	Port     uint16
	Text     []string
	Addrs    []string
}

// ToService converts a ServiceEntry to Service.
func (e *ServiceEntry) ToService() (*Service, error) {
	txt := StringsToTXTRecords(e.Text)
	info, err := DecodeServiceTXT(txt)
	if err != nil {
		return nil, err
	}

	return &Service{
		InstanceName: e.Instance,
		Host:         e.Host,
		Port:         e.Port,
		Addresses:    e.Addrs,
		InstanceID:   info.InstanceID,
		Version:      info.Version,
		EntityCount:  info.EntityCount,
		Name:         info.Name,
	}, nil
}
