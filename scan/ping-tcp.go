package scan

import (
	"context"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultPingPorts 连接探测存活时尝试的端口
var DefaultPingPorts = []int{80, 443, 22, 445, 3389, 135, 139, 8080}

// TCPPinger 不需要特权的存活探测:任一端口连接成功或被拒绝(RST)都说明主机在线
type TCPPinger struct {
	timeout time.Duration
	ports   []int
}

// NewTCPPinger 传入超时和探测端口,未指定端口则使用DefaultPingPorts
func NewTCPPinger(timeout time.Duration, ports []int) *TCPPinger {
	if len(ports) == 0 {
		ports = DefaultPingPorts
	}
	return &TCPPinger{timeout: timeout, ports: ports}
}

// Ping 所有端口并发连接,整体受timeout约束,第一个有回应的端口即可判定存活
func (t *TCPPinger) Ping(ctx context.Context, addr string) (time.Duration, bool) {
	if net.ParseIP(addr).To4() == nil { //只探测IPv4地址,不做域名解析
		return 0, false
	}
	ctx, cancel := context.WithDeadline(ctx, deadline(ctx, t.timeout))
	defer cancel()

	answered := make(chan time.Duration, len(t.ports))
	start := time.Now()
	dialer := net.Dialer{}
	for _, port := range t.ports {
		go func(p int) {
			conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, strconv.Itoa(p)))
			if err == nil {
				conn.Close()
				answered <- time.Since(start)
				return
			}
			if isConnRefused(err) {
				answered <- time.Since(start)
				return
			}
			answered <- -1
		}(port)
	}

	for range t.ports {
		if latency := <-answered; latency >= 0 {
			log.Debugf("%s: TCP探测存活 %v", addr, latency)
			return latency, true
		}
	}
	return 0, false
}

// isConnRefused 连接被拒绝说明对端协议栈有回应
func isConnRefused(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "refused")
}
