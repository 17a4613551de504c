//go:build linux || darwin || freebsd || netbsd || openbsd

package scan

import (
	"context"
	"net"
	"time"

	"github.com/j-keck/arping"
	log "github.com/sirupsen/logrus"
)

// ARPPinger 只对本地二层网段有效,能发现屏蔽了ICMP和TCP的主机,需要root
type ARPPinger struct {
	timeout time.Duration
}

// NewARPPinger arping的超时是全局的,这里统一设置一次
func NewARPPinger(timeout time.Duration) (*ARPPinger, error) {
	arping.SetTimeout(timeout)
	return &ARPPinger{timeout: timeout}, nil
}

func (a *ARPPinger) Ping(ctx context.Context, addr string) (time.Duration, bool) {
	ip := net.ParseIP(addr).To4()
	if ip == nil {
		return 0, false
	}

	type reply struct {
		mac net.HardwareAddr
		dur time.Duration
		err error
	}
	replies := make(chan reply, 1)
	go func() {
		mac, dur, err := arping.Ping(ip)
		replies <- reply{mac: mac, dur: dur, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, false
	case r := <-replies:
		if r.err != nil {
			return 0, false
		}
		log.Debugf("%s: ARP回应 %s (%v)", addr, r.mac, r.dur)
		return r.dur, true
	}
}
