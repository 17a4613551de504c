package scan

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config 一次扫描的全部输入,构建一次后传入Mapper
type Config struct {
	Target         string        `yaml:"target"` //CIDR,例如192.168.1.0/24
	Ports          []int         `yaml:"ports"`
	PingTimeout    time.Duration `yaml:"ping_timeout"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	Workers        int           `yaml:"workers"`
	PingMethod     string        `yaml:"ping_method"` //auto icmp tcp arp
	PingPorts      []int         `yaml:"ping_ports"`  //tcp存活探测使用的端口
	ResolveNames   bool          `yaml:"resolve_names"`
	ResolveTimeout time.Duration `yaml:"resolve_timeout"`
	DNSServer      string        `yaml:"dns_server"`
	OUIDatabase    string        `yaml:"oui_database"`
}

// DefaultConfig 存活探测50ms,端口连接100ms
func DefaultConfig() *Config {
	return &Config{
		PingTimeout:    50 * time.Millisecond,
		ConnectTimeout: 100 * time.Millisecond,
		Workers:        DefaultWorkers,
		PingMethod:     PingAuto,
		ResolveNames:   true,
		ResolveTimeout: 500 * time.Millisecond,
	}
}

// LoadConfig 读取yaml配置,覆盖在默认值之上
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Validate 检查端口范围,并把非法的超时和并发数量恢复为默认值
func (c *Config) Validate() error {
	defaults := DefaultConfig()
	if c.PingTimeout <= 0 {
		c.PingTimeout = defaults.PingTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaults.ConnectTimeout
	}
	if c.ResolveTimeout <= 0 {
		c.ResolveTimeout = defaults.ResolveTimeout
	}
	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}
	for _, list := range [][]int{c.Ports, c.PingPorts} {
		for _, port := range list {
			if port < 1 || port > 65535 {
				return errors.Wrapf(ErrInvalidPort, "%d: must be between 1 and 65535", port)
			}
		}
	}
	return nil
}
