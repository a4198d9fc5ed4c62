package jobdesc

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

// IPResolver resolves a hostname to its IP addresses. *net.Resolver
// satisfies it; tests substitute a stub.
type IPResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Validator decides whether the server may contact a URL. It rejects
// non-HTTP schemes, a fixed set of dangerous hostnames, and every IP
// address, literal or DNS-resolved, that falls in a private, loopback,
// link-local, or otherwise reserved range.
//
// Validation is fail-closed: when DNS is unavailable or a lookup fails, the
// URL is rejected rather than fetched unverified.
type Validator struct {
	// DNS resolves hostnames that are not IP literals. A nil DNS rejects
	// every such hostname.
	DNS IPResolver
	// DNSTimeout bounds each lookup. Zero means DefaultDNSTimeout.
	DNSTimeout time.Duration
}

// blockedHostnames are rejected before any DNS resolution. The metadata
// endpoint entry guards cloud instance credential services.
var blockedHostnames = map[string]struct{}{
	"localhost":       {},
	"localhost.":      {},
	"127.0.0.1":       {},
	"0.0.0.0":         {},
	"::1":             {},
	"169.254.169.254": {},
}

type blockedRange struct {
	prefix netip.Prefix
	reason string
}

var blockedV4Ranges = []blockedRange{
	{netip.MustParsePrefix("127.0.0.0/8"), "loopback address"},
	{netip.MustParsePrefix("10.0.0.0/8"), "private address"},
	{netip.MustParsePrefix("172.16.0.0/12"), "private address"},
	{netip.MustParsePrefix("192.168.0.0/16"), "private address"},
	{netip.MustParsePrefix("169.254.0.0/16"), "link-local address"},
	{netip.MustParsePrefix("100.64.0.0/10"), "carrier-grade NAT address"},
	{netip.MustParsePrefix("0.0.0.0/8"), "reserved address"},
	{netip.MustParsePrefix("224.0.0.0/4"), "multicast address"},
	{netip.MustParsePrefix("240.0.0.0/4"), "reserved address"},
}

var blockedV6Ranges = []blockedRange{
	{netip.MustParsePrefix("::1/128"), "loopback address"},
	{netip.MustParsePrefix("fc00::/7"), "unique-local address"},
	{netip.MustParsePrefix("fe80::/10"), "link-local address"},
}

// blockedIPReason returns a short description of why addr may not be
// contacted, or "" when it is publicly routable. IPv4-mapped IPv6 addresses
// are unwrapped and checked against the IPv4 rules.
func blockedIPReason(addr netip.Addr) string {
	addr = addr.Unmap().WithZone("")
	ranges := blockedV6Ranges
	if addr.Is4() {
		ranges = blockedV4Ranges
	}
	for _, r := range ranges {
		if r.prefix.Contains(addr) {
			return r.reason
		}
	}
	return ""
}

// Validate checks a parsed URL against the SSRF policy. The same check runs
// on the original URL and on every redirect target; results are never
// cached, so each hop of a redirect chain is validated independently.
func (v *Validator) Validate(ctx context.Context, u *url.URL) error {
	if u == nil || u.Hostname() == "" {
		return &BlockedError{Reason: "Invalid URL format", Class: FailInvalidURL}
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return &BlockedError{Reason: "Only HTTP and HTTPS URLs are supported", Class: FailDisallowedProtocol}
	}

	host := strings.ToLower(u.Hostname())
	if _, ok := blockedHostnames[host]; ok {
		return &BlockedError{Reason: "This host is not allowed", Class: FailBlockedHost}
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if reason := blockedIPReason(addr); reason != "" {
			return &BlockedError{
				Reason: fmt.Sprintf("URL points to a %s, which is not allowed", reason),
				Class:  FailBlockedHost,
			}
		}
		return nil
	}

	return v.validateResolved(ctx, host)
}

// validateResolved resolves host and checks every returned address. A
// hostname is safe only if all of its addresses are.
func (v *Validator) validateResolved(ctx context.Context, host string) error {
	if v.DNS == nil {
		return &BlockedError{Reason: "DNS resolution is unavailable", Class: FailBlockedHost}
	}

	timeout := v.DNSTimeout
	if timeout <= 0 {
		timeout = DefaultDNSTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addrs, err := v.DNS.LookupIPAddr(ctx, host)
	if err != nil || len(addrs) == 0 {
		return &BlockedError{Reason: "Could not resolve the URL hostname", Class: FailBlockedHost}
	}

	for _, ipAddr := range addrs {
		addr, ok := netip.AddrFromSlice(ipAddr.IP)
		if !ok {
			return &BlockedError{Reason: "Could not resolve the URL hostname", Class: FailBlockedHost}
		}
		if reason := blockedIPReason(addr); reason != "" {
			return &BlockedError{
				Reason: fmt.Sprintf("URL resolves to a %s, which is not allowed", reason),
				Class:  FailBlockedHost,
			}
		}
	}
	return nil
}
