package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNSClass summarises why a service host did or did not resolve.
type DNSClass string

const (
	DNSResolves    DNSClass = "RESOLVES"
	DNSNXDomain    DNSClass = "NXDOMAIN"
	DNSNoARecord   DNSClass = "NO_A_RECORD"
	DNSServfail    DNSClass = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName DNSClass = "INVALID_NAME"
)

const dnsLookupTimeout = 3 * time.Second

// Resolver is the subset of *net.Resolver the diagnosis needs.
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
}

type DNSDiagnosis struct {
	Host          string
	Class         DNSClass
	IPs           []net.IP
	CNAME         string
	Nameservers   []string
	ResolverError string
}

// DiagnoseDNS looks up the host of endpoint to explain a DNS transport
// failure. It only adds detail to reports.
func DiagnoseDNS(ctx context.Context, r Resolver, endpoint string) DNSDiagnosis {
	d := DNSDiagnosis{Host: hostOf(endpoint)}
	if d.Host == "" || strings.Contains(d.Host, "://") {
		d.Class = DNSInvalidName
		return d
	}

	ctx, cancel := context.WithTimeout(ctx, dnsLookupTimeout)
	defer cancel()

	ips, err := r.LookupIP(ctx, "ip", d.Host)
	switch {
	case err == nil && len(ips) > 0:
		d.IPs = ips
		d.Class = DNSResolves
	case err != nil:
		d.ResolverError = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				d.Class = DNSNXDomain
			} else if de.IsTemporary || de.Timeout() {
				d.Class = DNSServfail
			}
		}
	}

	if cname, err := r.LookupCNAME(ctx, d.Host); err == nil && !strings.EqualFold(cname, d.Host+".") {
		d.CNAME = strings.TrimSuffix(cname, ".")
	}

	// a zone with nameservers but no address is a missing record, not a missing domain
	if ns, err := r.LookupNS(ctx, d.Host); err == nil && len(ns) > 0 {
		for _, n := range ns {
			d.Nameservers = append(d.Nameservers, strings.TrimSuffix(n.Host, "."))
		}
		if d.Class == DNSNXDomain || d.Class == "" {
			d.Class = DNSNoARecord
		}
	}

	if d.Class == "" {
		if d.ResolverError != "" {
			d.Class = DNSServfail
		} else {
			d.Class = DNSNXDomain
		}
	}
	return d
}

func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
