package scan

import (
	"context"
	"io"
	"sync"

	"github.com/panjf2000/ants/v2"
	log "github.com/sirupsen/logrus"
)

// DefaultWorkers 同时进行的探测数量上限
const DefaultWorkers = 256

// Discoverer 存活探测的协调者:迭代器生产地址,协程池消费,单独的协程汇总结果
type Discoverer struct {
	pinger   Pinger
	resolver Resolver        //为nil时不解析主机名
	hardware *HardwareLookup //为nil时不查MAC
	workers  int
}

// NewDiscoverer 传入探测器,解析器,MAC查询,并发数量;resolver和hardware可以为nil
func NewDiscoverer(pinger Pinger, resolver Resolver, hardware *HardwareLookup, workers int) *Discoverer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Discoverer{
		pinger:   pinger,
		resolver: resolver,
		hardware: hardware,
		workers:  workers,
	}
}

// Discover 对每个候选地址做存活探测,全部完成后返回按地址排序的存活主机
// ctx被取消时不再提交新的探测,已提交的探测会等待完成
func (d *Discoverer) Discover(ctx context.Context, ti *TargetIterator) ([]*HostRecord, error) {
	pool, err := ants.NewPool(d.workers) //池满时Submit会阻塞,迭代器不会跑到探测前面太远
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	wg := &sync.WaitGroup{}
	resultChan := make(chan *HostRecord)
	hosts := []*HostRecord{}
	doneChan := make(chan struct{})

	go func() { //收集结果,只有这一个协程写hosts
		for host := range resultChan {
			hosts = append(hosts, host)
		}
		close(doneChan)
	}()

	var submitErr error
	for {
		addr, err := ti.Next()
		if err == io.EOF {
			break
		}
		if ctx.Err() != nil {
			log.Debugf("存活探测被取消,停止在%s", addr)
			break
		}

		job := hostJob{addr: addr, result: resultChan}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			d.runJob(ctx, job)
		}); err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}

	wg.Wait() //所有任务执行完毕之前阻塞在此
	close(resultChan)
	<-doneChan

	if submitErr != nil {
		return nil, submitErr
	}
	sortHosts(hosts)
	return hosts, nil
}

func (d *Discoverer) runJob(ctx context.Context, job hostJob) {
	if host, alive := d.Probe(ctx, job.addr); alive {
		job.result <- host
	}
}

// Probe 探测单个地址,存活时记录时延,再尽力解析主机名和MAC
// 任何失败都只会得到alive=false或空字段,不会影响其他地址
func (d *Discoverer) Probe(ctx context.Context, addr string) (host *HostRecord, alive bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("%s: 探测异常:%v", addr, r)
			host, alive = nil, false
		}
	}()

	latency, ok := d.pinger.Ping(ctx, addr)
	if !ok {
		return nil, false
	}
	host = NewHostRecord(addr)
	host.Latency = latency
	if d.resolver != nil {
		if name, err := d.resolver.LookupName(ctx, addr); err == nil {
			host.Name = name
		} else {
			log.Debugf("%s: 主机名解析失败:%v", addr, err)
		}
	}
	if d.hardware != nil {
		host.MAC, host.Vendor = d.hardware.Lookup(addr)
	}
	log.Debugf("%s is UP (%s)", addr, FormatLatency(latency))
	return host, true
}
