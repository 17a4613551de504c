package scan

import (
	"context"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/icmp"
)

//使用gopacket构造和解析ICMP报文,x/net/icmp负责收发

// ICMPPinger 发送echo request,等待对应的echo reply
type ICMPPinger struct {
	timeout          time.Duration
	network          string //ip4:icmp需要root,udp4是非特权的ICMP套接字
	id               uint16
	seq              uint32
	serializeOptions gopacket.SerializeOptions
}

// NewICMPPinger 先尝试raw套接字,再尝试非特权的datagram套接字,都不行则返回错误
func NewICMPPinger(timeout time.Duration) (*ICMPPinger, error) {
	var lastErr error
	for _, network := range []string{"ip4:icmp", "udp4"} {
		conn, err := icmp.ListenPacket(network, "0.0.0.0")
		if err != nil {
			lastErr = err
			continue
		}
		conn.Close()
		log.Debugf("ICMP探测使用%s套接字", network)
		return &ICMPPinger{
			timeout: timeout,
			network: network,
			id:      uint16(os.Getpid() & 0xffff),
			serializeOptions: gopacket.SerializeOptions{
				FixLengths:       true,
				ComputeChecksums: true,
			},
		}, nil
	}
	return nil, lastErr
}

func (p *ICMPPinger) privileged() bool {
	return p.network == "ip4:icmp"
}

// Ping 每次探测使用独立的套接字,raw套接字会收到所有ICMP报文,按来源地址和seq过滤
func (p *ICMPPinger) Ping(ctx context.Context, addr string) (time.Duration, bool) {
	ip := net.ParseIP(addr).To4()
	if ip == nil {
		return 0, false
	}

	conn, err := icmp.ListenPacket(p.network, "0.0.0.0")
	if err != nil {
		log.Debugf("%s: 打开ICMP套接字失败:%v", addr, err)
		return 0, false
	}
	defer conn.Close()

	var dst net.Addr = &net.IPAddr{IP: ip}
	if !p.privileged() {
		dst = &net.UDPAddr{IP: ip}
	}

	seq := uint16(atomic.AddUint32(&p.seq, 1))
	request, err := p.echoRequest(seq)
	if err != nil {
		return 0, false
	}

	if err := conn.SetDeadline(deadline(ctx, p.timeout)); err != nil {
		return 0, false
	}

	start := time.Now()
	if _, err := conn.WriteTo(request, dst); err != nil {
		log.Debugf("%s: 发送echo失败:%v", addr, err)
		return 0, false
	}

	buf := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(buf)
		if err != nil { //超时
			return 0, false
		}
		if !peerIs(peer, ip) {
			continue
		}
		if p.isReply(buf[:n], seq) {
			return time.Since(start), true
		}
	}
}

// echoRequest 构造一个带校验和的echo request
func (p *ICMPPinger) echoRequest(seq uint16) ([]byte, error) {
	echo := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
		Id:       p.id,
		Seq:      seq,
	}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, p.serializeOptions, echo, gopacket.Payload([]byte("netmapper"))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// isReply 非特权套接字的id会被内核改写,只校验seq
func (p *ICMPPinger) isReply(data []byte, seq uint16) bool {
	packet := gopacket.NewPacket(data, layers.LayerTypeICMPv4, gopacket.NoCopy)
	layer := packet.Layer(layers.LayerTypeICMPv4)
	if layer == nil {
		return false
	}
	reply := layer.(*layers.ICMPv4)
	if reply.TypeCode.Type() != layers.ICMPv4TypeEchoReply || reply.Seq != seq {
		return false
	}
	return !p.privileged() || reply.Id == p.id
}

func peerIs(peer net.Addr, ip net.IP) bool {
	switch a := peer.(type) {
	case *net.IPAddr:
		return a.IP.Equal(ip)
	case *net.UDPAddr:
		return a.IP.Equal(ip)
	}
	return false
}
