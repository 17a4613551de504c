package scan

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
)

// PortProber 单个(主机,端口)的探测,开放返回true,拒绝/过滤/超时一律视为关闭
type PortProber interface {
	ProbeTCP(ctx context.Context, addr string, port int) bool
}

// TCPProber 是TCP连接探测
type TCPProber struct {
	Timeout time.Duration
}

// ProbeTCP 发起tcp连接,成功后立即关闭
func (t *TCPProber) ProbeTCP(ctx context.Context, addr string, port int) bool {
	target := net.JoinHostPort(addr, strconv.Itoa(port))
	log.Debugf("开始扫描%s", target)

	ctx, cancel := context.WithDeadline(ctx, deadline(ctx, t.Timeout))
	defer cancel()
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		log.Debugf("%s :连接失败:%v", target, err)
		return false
	}
	conn.Close()
	log.Debugf("%s is OPEN!", target)
	return true
}

// ConnectScanner 端口扫描的协调者
type ConnectScanner struct {
	prober      PortProber
	maxRoutines int //每个阶段同时进行的探测数量
}

// NewConnectScanner 传入端口探测器和并发数量
func NewConnectScanner(prober PortProber, parallelism int) *ConnectScanner {
	if parallelism <= 0 {
		parallelism = DefaultWorkers
	}
	return &ConnectScanner{
		prober:      prober,
		maxRoutines: parallelism,
	}
}

// Scan 按端口分阶段扫描:所有主机的端口k都探测完,才开始端口k+1
// 完成后每个主机的Open按升序排列
func (c *ConnectScanner) Scan(ctx context.Context, hosts []*HostRecord, ports []int) error {
	if len(hosts) == 0 || len(ports) == 0 {
		return nil
	}
	for _, port := range ports {
		if ctx.Err() != nil {
			log.Debugf("端口扫描被取消,停止在端口%d", port)
			break
		}
		c.scanPort(ctx, hosts, port)
	}
	for _, host := range hosts {
		host.finalize()
	}
	return ctx.Err()
}

// scanPort 一个阶段:对所有主机并发探测同一个端口,返回前等待全部完成
func (c *ConnectScanner) scanPort(ctx context.Context, hosts []*HostRecord, port int) {
	swg := sizedwaitgroup.New(c.maxRoutines)
	openChan := make(chan portHit)
	doneChan := make(chan struct{})

	go func() { //单独开协程收集结果,是唯一写HostRecord.Open的地方
		for hit := range openChan {
			hosts[hit.host].Open = append(hosts[hit.host].Open, hit.port)
		}
		close(doneChan)
	}()

	for i, host := range hosts {
		if err := swg.AddWithContext(ctx); err != nil {
			break
		}
		go func(job portJob) {
			defer swg.Done()
			c.runJob(ctx, job)
		}(portJob{host: i, addr: host.Address, port: port, open: openChan})
	}

	swg.Wait()
	close(openChan) //关闭后收集协程退出
	<-doneChan
	log.Debugf("端口%d扫描完毕", port)
}

func (c *ConnectScanner) runJob(ctx context.Context, job portJob) {
	if c.prober.ProbeTCP(ctx, job.addr, job.port) {
		job.open <- portHit{host: job.host, port: job.port}
	}
}
