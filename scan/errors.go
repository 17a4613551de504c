package scan

import "github.com/pkg/errors"

var (
	// ErrMalformedAddress 地址不是合法的点分十进制IPv4
	ErrMalformedAddress = errors.New("malformed address")
	// ErrInvalidPrefix 前缀长度超出可用范围
	ErrInvalidPrefix = errors.New("invalid prefix")
	// ErrInvalidPort 端口不在1-65535之间
	ErrInvalidPort = errors.New("invalid port")
	// ErrUnknownPingMethod 未知的存活探测方式
	ErrUnknownPingMethod = errors.New("unknown ping method")
	// ErrARPUnsupported 当前平台不支持ARP探测
	ErrARPUnsupported = errors.New("arp ping is not supported on this platform")
)
