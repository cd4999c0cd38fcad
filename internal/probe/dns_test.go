package probe

import (
	"context"
	"errors"
	"net"
	"testing"
)

type fakeResolver struct {
	ips    []net.IP
	ipErr  error
	cname  string
	ns     []*net.NS
	nsErr  error
	lookup []string
}

func (f *fakeResolver) LookupIP(_ context.Context, _, host string) ([]net.IP, error) {
	f.lookup = append(f.lookup, host)
	return f.ips, f.ipErr
}

func (f *fakeResolver) LookupCNAME(_ context.Context, host string) (string, error) {
	if f.cname == "" {
		return host + ".", nil
	}
	return f.cname, nil
}

func (f *fakeResolver) LookupNS(context.Context, string) ([]*net.NS, error) {
	if f.nsErr != nil {
		return nil, f.nsErr
	}
	return f.ns, nil
}

func TestDiagnoseDNS(t *testing.T) {
	notFound := &net.DNSError{Err: "no such host", Name: "x", IsNotFound: true}
	cases := []struct {
		name string
		r    *fakeResolver
		want DNSClass
	}{
		{"resolves", &fakeResolver{ips: []net.IP{net.ParseIP("10.0.0.1")}, nsErr: errors.New("no ns")}, DNSResolves},
		{"nxdomain", &fakeResolver{ipErr: notFound, nsErr: notFound}, DNSNXDomain},
		{"no a record", &fakeResolver{ipErr: notFound, ns: []*net.NS{{Host: "ns1.example.net."}}}, DNSNoARecord},
		{"servfail", &fakeResolver{ipErr: &net.DNSError{Err: "server misbehaving", IsTemporary: true}, nsErr: notFound}, DNSServfail},
		{"opaque error", &fakeResolver{ipErr: errors.New("boom"), nsErr: notFound}, DNSServfail},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := DiagnoseDNS(context.Background(), c.r, "http://svc.example.com:8080/rpc")
			if d.Class != c.want {
				t.Fatalf("class = %s want %s", d.Class, c.want)
			}
			if len(c.r.lookup) != 1 || c.r.lookup[0] != "svc.example.com" {
				t.Fatalf("looked up %v", c.r.lookup)
			}
		})
	}
}

func TestDiagnoseDNS_CNAMEAndNameservers(t *testing.T) {
	r := &fakeResolver{
		ips:   []net.IP{net.ParseIP("10.0.0.2")},
		cname: "edge.cdn.example.",
		ns:    []*net.NS{{Host: "ns1.example.net."}, {Host: "ns2.example.net."}},
	}
	d := DiagnoseDNS(context.Background(), r, "https://svc.example.com/rpc")
	if d.Class != DNSResolves || d.CNAME != "edge.cdn.example" || len(d.Nameservers) != 2 || d.Nameservers[0] != "ns1.example.net" {
		t.Fatalf("unexpected diagnosis %+v", d)
	}
}

func TestDiagnoseDNS_InvalidName(t *testing.T) {
	if d := DiagnoseDNS(context.Background(), &fakeResolver{}, ""); d.Class != DNSInvalidName {
		t.Fatalf("class = %s", d.Class)
	}
}
