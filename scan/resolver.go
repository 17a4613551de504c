package scan

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Resolver 反向解析主机名,解析失败不影响主机的存活状态
type Resolver interface {
	LookupName(ctx context.Context, addr string) (string, error)
}

// NewResolver 指定了DNS服务器则直接向它发PTR查询,否则使用系统解析器
func NewResolver(server string, timeout time.Duration) Resolver {
	if strings.TrimSpace(server) == "" {
		return &SystemResolver{Timeout: timeout}
	}
	return NewDNSResolver(server, timeout)
}

// SystemResolver 使用系统配置(/etc/hosts, resolv.conf)
type SystemResolver struct {
	Timeout time.Duration
}

func (r *SystemResolver) LookupName(ctx context.Context, addr string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(ctx, addr)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.Errorf("%s: no PTR record", addr)
	}
	return strings.TrimSuffix(names[0], "."), nil
}

// DNSResolver 用miekg/dns向指定服务器查询PTR记录
type DNSResolver struct {
	server string
	client *dns.Client
}

// NewDNSResolver server可以省略端口,默认53
func NewDNSResolver(server string, timeout time.Duration) *DNSResolver {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &DNSResolver{
		server: server,
		client: &dns.Client{Net: "udp", Timeout: timeout},
	}
}

func (r *DNSResolver) LookupName(ctx context.Context, addr string) (string, error) {
	reverse, err := dns.ReverseAddr(addr)
	if err != nil {
		return "", err
	}

	msg := new(dns.Msg)
	msg.SetQuestion(reverse, dns.TypePTR)
	msg.RecursionDesired = true

	in, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return "", err
	}
	if in.Rcode != dns.RcodeSuccess {
		return "", errors.Errorf("%s: %s", addr, dns.RcodeToString[in.Rcode])
	}
	for _, rr := range in.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			name := strings.TrimSuffix(ptr.Ptr, ".")
			log.Debugf("%s -> %s", addr, name)
			return name, nil
		}
	}
	return "", errors.Errorf("%s: no PTR record", addr)
}
