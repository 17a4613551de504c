package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxPrefix 前缀超过30时没有可用的主机地址(/31 /32)
const MaxPrefix = 30

// Subnet 由用户输入构建一次,之后只读
type Subnet struct {
	Network  uint32 //网络地址
	Prefix   int    //前缀长度
	Mask     uint32 //子网掩码
	Capacity uint32 //可用主机数量,不含网络地址和广播地址
}

// NewSubnet 根据网络地址和前缀构建子网,地址中的主机位会被掩掉
func NewSubnet(address string, prefix int) (*Subnet, error) {
	network, err := AddressToInteger(address)
	if err != nil {
		return nil, err
	}
	capacity, err := HostCapacity(prefix)
	if err != nil {
		return nil, err
	}
	mask := maskBits(prefix)
	return &Subnet{
		Network:  network & mask,
		Prefix:   prefix,
		Mask:     mask,
		Capacity: capacity,
	}, nil
}

// ParseCIDR 192.168.1.0/24 -> Subnet
func ParseCIDR(cidr string) (*Subnet, error) {
	cidr = strings.TrimSpace(cidr)
	parts := strings.Split(cidr, "/")
	if len(parts) != 2 {
		return nil, errors.Wrapf(ErrInvalidPrefix, "%q: expected address/prefix", cidr)
	}
	prefix, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPrefix, "%q: prefix is not a number", cidr)
	}
	return NewSubnet(strings.TrimSpace(parts[0]), prefix)
}

// Address 网络地址的点分十进制形式
func (s *Subnet) Address() string {
	return IntegerToAddress(s.Network)
}

// MaskString 掩码的点分十进制形式
func (s *Subnet) MaskString() string {
	return IntegerToAddress(s.Mask)
}

// Broadcast 广播地址
func (s *Subnet) Broadcast() uint32 {
	return s.Network | ^s.Mask
}

func (s *Subnet) String() string {
	return fmt.Sprintf("%s/%d", s.Address(), s.Prefix)
}

// AddressToInteger 按大端序把四个八位组合成一个uint32
func AddressToInteger(address string) (uint32, error) {
	octets := strings.Split(address, ".")
	if len(octets) != 4 {
		return 0, errors.Wrapf(ErrMalformedAddress, "%q: want 4 octets, got %d", address, len(octets))
	}
	var ip uint32
	for _, octet := range octets {
		//只接受纯数字,strconv.Atoi会放过"+1"这种写法
		if octet == "" || strings.TrimLeft(octet, "0123456789") != "" {
			return 0, errors.Wrapf(ErrMalformedAddress, "%q: octet %q is not numeric", address, octet)
		}
		v, err := strconv.Atoi(octet)
		if err != nil || v > 255 {
			return 0, errors.Wrapf(ErrMalformedAddress, "%q: octet %q out of range", address, octet)
		}
		ip = ip<<8 | uint32(v)
	}
	return ip, nil
}

// IntegerToAddress AddressToInteger的逆运算
func IntegerToAddress(ip uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(ip>>24), byte(ip>>16), byte(ip>>8), byte(ip))
}

// HostCapacity 2^(32-prefix) - 2, /31和/32没有可用地址,直接拒绝
func HostCapacity(prefix int) (uint32, error) {
	if prefix < 0 || prefix > MaxPrefix {
		return 0, errors.Wrapf(ErrInvalidPrefix, "/%d: must be between 0 and %d", prefix, MaxPrefix)
	}
	return uint32(uint64(1)<<uint(32-prefix) - 2), nil
}

// SubnetMask (2^prefix - 1) << (32 - prefix)
func SubnetMask(prefix int) (string, error) {
	if prefix < 0 || prefix > 32 {
		return "", errors.Wrapf(ErrInvalidPrefix, "/%d: must be between 0 and 32", prefix)
	}
	return IntegerToAddress(maskBits(prefix)), nil
}

func maskBits(prefix int) uint32 {
	return uint32((uint64(1)<<uint(prefix) - 1) << uint(32-prefix))
}
