// Package discovery implements mDNS advertising and browsing for
// hestia-state daemons.
//
// A daemon advertises itself as a "_hestia-state._tcp" service in the
// local domain so that other tools on the network can find it without
// configuration. The TXT records carry the daemon's instance ID, its
// version and a rough entity count.
//
// # Advertising
//
// The Advertiser interface abstracts the mDNS layer. MDNSAdvertiser is
// the production implementation built on zeroconf. Tests can supply a
// mock Advertiser.
//
// # Browsing
//
// MDNSBrowser searches for advertised daemons. Results from multiple
// network interfaces are aggregated by instance name so each daemon is
// reported once with all of its addresses.
package discovery
