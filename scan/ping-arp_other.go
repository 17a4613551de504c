//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package scan

import (
	"context"
	"time"
)

// ARPPinger 当前平台不支持arping
type ARPPinger struct{}

func NewARPPinger(timeout time.Duration) (*ARPPinger, error) {
	return nil, ErrARPUnsupported
}

func (a *ARPPinger) Ping(ctx context.Context, addr string) (time.Duration, bool) {
	return 0, false
}
