package scan

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Pinger 有多种存活探测方式,所以使用接口来定义探测器的行为
// 探测失败(不可达,超时,地址错误)不是错误,只返回alive=false
type Pinger interface {
	Ping(ctx context.Context, addr string) (latency time.Duration, alive bool)
}

const (
	PingAuto = "auto" //优先ICMP,没有权限时退回到TCP连接探测
	PingICMP = "icmp"
	PingTCP  = "tcp"
	PingARP  = "arp"
)

// NewPinger 根据探测方式选择探测器
func NewPinger(method string, timeout time.Duration, tcpPorts []int) (Pinger, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case PingAuto, "":
		p, err := NewICMPPinger(timeout)
		if err != nil {
			log.Warnf("ICMP不可用(%v),改用TCP连接探测存活", err)
			return NewTCPPinger(timeout, tcpPorts), nil
		}
		return p, nil
	case PingICMP, "ping":
		return NewICMPPinger(timeout)
	case PingTCP, "connect":
		return NewTCPPinger(timeout, tcpPorts), nil
	case PingARP:
		return NewARPPinger(timeout)
	}
	return nil, errors.Wrapf(ErrUnknownPingMethod, "%q", method)
}

// deadline 单次探测的截止时间,取超时和ctx中较早的一个
func deadline(ctx context.Context, timeout time.Duration) time.Time {
	d := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}
