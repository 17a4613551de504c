package scan

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Mapper 串起整个流程:子网计算 -> 存活探测 -> 端口扫描 -> 生成报告
type Mapper struct {
	cfg        *Config
	Discoverer *Discoverer
	Scanner    *ConnectScanner
}

// NewMapper 根据配置创建探测器,解析器和扫描器
func NewMapper(cfg *Config) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pinger, err := NewPinger(cfg.PingMethod, cfg.PingTimeout, cfg.PingPorts)
	if err != nil {
		return nil, err
	}
	var resolver Resolver
	if cfg.ResolveNames {
		resolver = NewResolver(cfg.DNSServer, cfg.ResolveTimeout)
	}
	hardware, err := NewHardwareLookup(cfg.OUIDatabase)
	if err != nil {
		return nil, err
	}

	return &Mapper{
		cfg:        cfg,
		Discoverer: NewDiscoverer(pinger, resolver, hardware, cfg.Workers),
		Scanner:    NewConnectScanner(&TCPProber{Timeout: cfg.ConnectTimeout}, cfg.Workers),
	}, nil
}

// Run 子网不合法时直接返回错误,不会发出任何探测
func (m *Mapper) Run(ctx context.Context) (*ScanReport, error) {
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	subnet, err := ParseCIDR(m.cfg.Target)
	if err != nil {
		return nil, err
	}
	log.Infof("Network: %s, Max network hosts: %d, Subnet mask: %s",
		subnet, subnet.Capacity, subnet.MaskString())

	start := time.Now()
	log.Infof("Pinging %d addresses to find active hosts...", subnet.Capacity)
	hosts, err := m.Discoverer.Discover(ctx, NewTargetIterator(subnet))
	if err != nil {
		return nil, err
	}
	log.Infof("Found %d active hosts", len(hosts))

	log.Infof("Scanning %d ports on each active host...", len(m.cfg.Ports))
	if err := m.Scanner.Scan(ctx, hosts, m.cfg.Ports); err != nil && ctx.Err() == nil {
		return nil, err
	}

	report := BuildReport(subnet, hosts, start, time.Since(start))
	report.Interrupted = ctx.Err() != nil
	return report, nil
}
